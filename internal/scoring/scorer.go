// Package scoring converts raw property attributes into a graded 0-125
// investment score across five weighted categories. All functions are pure
// transformations over in-memory structures; the static weight and metro
// tables are the only shared state and are read-only.
package scoring

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/deedscope/research-cli/internal/classify"
	"github.com/deedscope/research-cli/internal/model"
	"github.com/deedscope/research-cli/internal/weights"
)

// CategoryScorer produces the 0-25 score, component breakdown, and 0-100
// confidence for one scoring category.
type CategoryScorer interface {
	Category() model.Category
	Score(p model.PropertyData, pt classify.PropertyType) (model.CategoryScore, error)
}

// inputScorer is the default CategoryScorer: it consumes the pre-computed
// sub-scores supplied by upstream data providers on PropertyData.Inputs,
// applies the per-type component multipliers, and totals onto the 0-25
// scale. A property with no input for the category scores zero with zero
// confidence rather than failing; malformed values fail.
type inputScorer struct {
	category model.Category
}

func (s inputScorer) Category() model.Category { return s.category }

func (s inputScorer) Score(p model.PropertyData, pt classify.PropertyType) (model.CategoryScore, error) {
	in, ok := p.Inputs[s.category]
	if !ok {
		return model.CategoryScore{Category: s.category}, nil
	}

	if math.IsNaN(in.Confidence) || in.Confidence < 0 || in.Confidence > 100 {
		return model.CategoryScore{}, eris.Errorf("scoring: %s confidence %v out of range", s.category, in.Confidence)
	}

	cs := model.CategoryScore{
		Category:   s.category,
		Confidence: in.Confidence,
		Components: make([]model.ComponentScore, 0, len(in.Components)),
	}

	var total float64
	for _, c := range in.Components {
		if math.IsNaN(c.Score) || math.IsInf(c.Score, 0) {
			return model.CategoryScore{}, eris.Errorf("scoring: %s component %q has invalid score", s.category, c.Name)
		}
		weighted := c.Score * weights.ComponentMultiplier(pt, s.category, c.Name)
		total += weighted
		cs.Components = append(cs.Components, model.ComponentScore{Name: c.Name, Score: round2(weighted)})
	}

	cs.Score = round2(clampScore(total, model.MaxCategoryScore))
	return cs, nil
}

// DefaultScorers returns one input-backed scorer per category, in canonical
// category order.
func DefaultScorers() []CategoryScorer {
	cats := model.Categories()
	out := make([]CategoryScorer, 0, len(cats))
	for _, cat := range cats {
		out = append(out, inputScorer{category: cat})
	}
	return out
}

func clampScore(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
