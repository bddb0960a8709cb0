// Package server exposes the scoring engine over HTTP for the SaaS
// frontend. All scoring happens synchronously in the request; only
// persistence (when a store is configured) adds I/O.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/deedscope/research-cli/internal/comparison"
	"github.com/deedscope/research-cli/internal/config"
	"github.com/deedscope/research-cli/internal/scoring"
	"github.com/deedscope/research-cli/internal/store"
)

// Server is the HTTP API around the scoring engine.
type Server struct {
	httpServer *http.Server
	engine     *scoring.Engine
	comparer   *comparison.Comparer
	store      store.Store // nil when persistence is not configured
	minConf    float64
}

// New builds a Server. st may be nil, in which case the persistence
// endpoints return 404 and save requests are rejected.
func New(cfg config.ServerConfig, minConfidence float64, st store.Store) *Server {
	s := &Server{
		engine:  scoring.NewEngine(),
		store:   st,
		minConf: minConfidence,
	}
	s.comparer = comparison.NewComparer(s.engine)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(rateLimit(rate.Limit(cfg.RatePerSecond), cfg.RateBurst))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", s.handleScore)
		r.Post("/compare", s.handleCompare)

		r.Route("/metros", func(r chi.Router) {
			r.Get("/", s.handleListMetros)
			r.Get("/detect", s.handleDetectMetro)
			r.Get("/nearest", s.handleNearestMetro)
		})

		r.Get("/breakdowns/{propertyID}", s.handleGetBreakdown)
		r.Get("/breakdowns", s.handleListBreakdowns)
		r.Get("/comparisons/{id}", s.handleGetComparison)
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("starting server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- eris.Wrap(err, "server: listen")
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server: shutdown")
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// rateLimit applies a process-wide token bucket. Per-client fairness is
// handled upstream by the API gateway.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
