package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deedscope/research-cli/internal/comparison"
	"github.com/deedscope/research-cli/internal/metro"
	"github.com/deedscope/research-cli/internal/model"
	"github.com/deedscope/research-cli/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type scoreRequest struct {
	Property model.PropertyData `json:"property"`
	Save     bool               `json:"save,omitempty"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Property.ID == "" {
		writeError(w, http.StatusBadRequest, "property.id is required")
		return
	}

	b, err := s.engine.Score(req.Property)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if req.Save {
		if s.store == nil {
			writeError(w, http.StatusBadRequest, "persistence is not configured")
			return
		}
		if err := s.store.SaveBreakdown(r.Context(), b); err != nil {
			zap.L().Error("save breakdown", zap.String("property_id", b.PropertyID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save breakdown")
			return
		}
	}

	writeJSON(w, http.StatusOK, b)
}

type compareRequest struct {
	Property1     model.PropertyData `json:"property1"`
	Property2     model.PropertyData `json:"property2"`
	MinConfidence float64            `json:"min_confidence,omitempty"`
	Save          bool               `json:"save,omitempty"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	minConf := req.MinConfidence
	if minConf <= 0 {
		minConf = s.minConf
	}
	res, err := s.comparer.Compare(req.Property1, req.Property2, &comparison.Options{
		MinConfidenceThreshold: minConf,
	})
	if err != nil {
		var scoreErr *comparison.ScoringError
		switch {
		case eris.Is(err, comparison.ErrMissingPropertyData):
			writeError(w, http.StatusBadRequest, err.Error())
		case eris.Is(err, comparison.ErrConfidenceTooLow):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &scoreErr):
			writeError(w, http.StatusUnprocessableEntity, scoreErr.Error())
		default:
			zap.L().Error("compare", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "comparison failed")
		}
		return
	}

	if req.Save {
		if s.store == nil {
			writeError(w, http.StatusBadRequest, "persistence is not configured")
			return
		}
		if err := s.store.SaveComparison(r.Context(), res); err != nil {
			zap.L().Error("save comparison", zap.String("id", res.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save comparison")
			return
		}
	}

	writeJSON(w, http.StatusOK, res)
}

type metroInfo struct {
	Name     string   `json:"name"`
	State    string   `json:"state"`
	Counties []string `json:"counties"`
}

func (s *Server) handleListMetros(w http.ResponseWriter, r *http.Request) {
	defs := metro.List()
	out := make([]metroInfo, len(defs))
	for i, d := range defs {
		out[i] = metroInfo{Name: d.Name, State: d.State, Counties: d.Counties}
	}
	writeJSON(w, http.StatusOK, map[string]any{"metros": out})
}

func parseCoordParams(r *http.Request) (*model.Coordinate, bool) {
	latRaw := r.URL.Query().Get("lat")
	lngRaw := r.URL.Query().Get("lng")
	if latRaw == "" && lngRaw == "" {
		return nil, true
	}
	lat, err1 := strconv.ParseFloat(latRaw, 64)
	lng, err2 := strconv.ParseFloat(lngRaw, 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	return &model.Coordinate{Lat: lat, Lng: lng}, true
}

func (s *Server) handleDetectMetro(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		writeError(w, http.StatusBadRequest, "state is required")
		return
	}
	coords, ok := parseCoordParams(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lat/lng")
		return
	}

	name := metro.Detect(coords, r.URL.Query().Get("county"), state)
	writeJSON(w, http.StatusOK, map[string]any{
		"metro":   name,
		"matched": name != "",
	})
}

func (s *Server) handleNearestMetro(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	coords, ok := parseCoordParams(r)
	if !ok || coords == nil {
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}

	name, distKM, found := metro.FindNearest(*coords, state)
	if !found {
		writeJSON(w, http.StatusOK, map[string]any{"matched": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"matched":     true,
		"metro":       name,
		"distance_km": distKM,
	})
}

func (s *Server) handleGetBreakdown(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "persistence is not configured")
		return
	}
	propertyID := chi.URLParam(r, "propertyID")

	b, err := s.store.LatestBreakdown(r.Context(), propertyID)
	if err != nil {
		writeError(w, http.StatusNotFound, "no breakdown for property "+propertyID)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleListBreakdowns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "persistence is not configured")
		return
	}

	q := r.URL.Query()
	filter := store.BreakdownFilter{
		PropertyType: q.Get("property_type"),
		Metro:        q.Get("metro"),
	}
	if raw := q.Get("min_total"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid min_total")
			return
		}
		filter.MinTotal = v
	}
	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = v
	}

	list, err := s.store.ListBreakdowns(r.Context(), filter)
	if err != nil {
		zap.L().Error("list breakdowns", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list breakdowns")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"breakdowns": list})
}

func (s *Server) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "persistence is not configured")
		return
	}
	id := chi.URLParam(r, "id")

	res, err := s.store.GetComparison(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "comparison "+id+" not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
