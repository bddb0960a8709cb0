package scoring

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deedscope/research-cli/internal/classify"
	"github.com/deedscope/research-cli/internal/metro"
	"github.com/deedscope/research-cli/internal/model"
	"github.com/deedscope/research-cli/internal/weights"
)

// Engine runs the full scoring pipeline: property-type classification,
// metro detection, category scoring, regional adjustment, and weighted
// aggregation. Engines are stateless and safe for concurrent use.
type Engine struct {
	scorers []CategoryScorer
}

// NewEngine creates an Engine. With no scorers given, the default
// input-backed scorer set is used.
func NewEngine(scorers ...CategoryScorer) *Engine {
	if len(scorers) == 0 {
		scorers = DefaultScorers()
	}
	return &Engine{scorers: scorers}
}

// Score produces the full breakdown for one property.
func (e *Engine) Score(p model.PropertyData) (*model.ScoreBreakdown, error) {
	pt := classify.DetectPropertyType(p.Signals)
	metroName := metro.Detect(p.Coords, p.County, p.State)

	b := &model.ScoreBreakdown{
		PropertyID:   p.ID,
		PropertyType: string(pt),
		Metro:        metroName,
		Categories:   make(map[model.Category]model.CategoryScore, len(e.scorers)),
	}

	for _, s := range e.scorers {
		cs, err := s.Score(p, pt)
		if err != nil {
			return nil, eris.Wrap(err, fmt.Sprintf("scoring: category %s", s.Category()))
		}
		if _, ok := p.Inputs[s.Category()]; !ok {
			b.Warnings = append(b.Warnings, fmt.Sprintf("no %s data available; category scored zero with zero confidence", s.Category()))
		}
		cs.Score = round2(weights.AdjustCategoryScore(p.State, metroName, cs.Category, cs.Score))
		b.Categories[cs.Category] = cs
	}

	w := weights.ForPropertyType(pt, true)
	if pt == classify.Unknown {
		b.Warnings = append(b.Warnings, "property type unknown; weights fell back to defaults")
	}

	var total, confidence float64
	for cat, cs := range b.Categories {
		total += cs.Score * w.Get(cat)
		confidence += cs.Confidence * w.Get(cat) / weights.Scale
	}
	b.Total = round2(total)
	b.Confidence = round2(confidence)
	b.Grade = LetterGrade(b.Total)
	b.ConfidenceLabel = ConfidenceLabel(b.Confidence)

	if p.EdgeCase {
		b.EdgeCase = true
		b.EdgeCaseReason = p.EdgeCaseReason
		reason := p.EdgeCaseReason
		if reason == "" {
			reason = "flagged non-investable by automated screening"
		}
		b.Warnings = append(b.Warnings, "edge case: "+reason)
	}

	zap.L().Debug("scoring: property scored",
		zap.String("property_id", p.ID),
		zap.String("property_type", string(pt)),
		zap.String("metro", metroName),
		zap.Float64("total", b.Total),
		zap.String("grade", b.Grade),
	)

	return b, nil
}

// CalculateWeightedScore computes the dot product of category scores and
// weights, rounded to two decimal places. When normalize is true the
// weights are first rescaled to sum to 1.0, keeping the result on the
// single-category 0-25 scale; the 0-125 total is that value times five.
func CalculateWeightedScore(scores map[model.Category]float64, w weights.CategoryWeights, normalize bool) float64 {
	if normalize {
		w = weights.Normalize(w, 1.0)
	}
	var total float64
	for cat, score := range scores {
		total += score * w.Get(cat)
	}
	return round2(total)
}
