package weights

import (
	"strings"

	"github.com/deedscope/research-cli/internal/model"
)

// regionKey addresses a regional adjustment table entry. State-level
// entries carry an empty Metro; metro-level entries carry both.
type regionKey struct {
	State string
	Metro string
}

// newRegionKey is the single key constructor; call sites never build
// ad hoc string keys.
func newRegionKey(state, metro string) regionKey {
	return regionKey{State: strings.ToUpper(strings.TrimSpace(state)), Metro: strings.TrimSpace(metro)}
}

// Adjustment nudges category scores for a region. Multipliers apply first,
// then additives; both default to identity when absent.
type Adjustment struct {
	Additive   map[model.Category]float64
	Multiplier map[model.Category]float64
}

// regional holds the hand-authored state- and metro-level score nudges.
// Absence of an entry means "no regional adjustment".
var regional = map[regionKey]Adjustment{
	newRegionKey("FL", ""): {
		Additive: map[model.Category]float64{
			model.CategoryRisk:   -1.5, // hurricane and flood exposure
			model.CategoryMarket: 0.5,
		},
	},
	newRegionKey("TX", ""): {
		Additive: map[model.Category]float64{model.CategoryMarket: 0.5},
	},
	newRegionKey("AZ", ""): {
		Additive: map[model.Category]float64{model.CategoryRisk: -0.5},
	},
	newRegionKey("FL", "Miami"): {
		Additive:   map[model.Category]float64{model.CategoryProfit: 1.0, model.CategoryRisk: -1.0},
		Multiplier: map[model.Category]float64{model.CategoryMarket: 1.08},
	},
	newRegionKey("TX", "Austin"): {
		Additive: map[model.Category]float64{model.CategoryMarket: 1.5},
	},
	newRegionKey("TX", "Houston"): {
		Additive: map[model.Category]float64{model.CategoryRisk: -1.0},
	},
	newRegionKey("PA", "Pittsburgh"): {
		Additive: map[model.Category]float64{model.CategoryFinancial: 0.5, model.CategoryMarket: -0.5},
	},
	newRegionKey("NV", "Las Vegas"): {
		Multiplier: map[model.Category]float64{model.CategoryMarket: 1.05},
	},
}

// AdjustCategoryScore layers the state-level and metro-level adjustments
// onto a raw category score, clamping to the 0-25 scale. Missing table
// entries pass the score through unchanged.
func AdjustCategoryScore(state, metroName string, cat model.Category, score float64) float64 {
	score = applyAdjustment(regional[newRegionKey(state, "")], cat, score)
	if metroName != "" {
		score = applyAdjustment(regional[newRegionKey(state, metroName)], cat, score)
	}
	return clampCategory(score)
}

// HasRegionalAdjustment reports whether any adjustment applies for the
// state/metro pair, for warning surfacing.
func HasRegionalAdjustment(state, metroName string) bool {
	if _, ok := regional[newRegionKey(state, "")]; ok {
		return true
	}
	if metroName == "" {
		return false
	}
	_, ok := regional[newRegionKey(state, metroName)]
	return ok
}

func applyAdjustment(adj Adjustment, cat model.Category, score float64) float64 {
	if m, ok := adj.Multiplier[cat]; ok {
		score *= m
	}
	if a, ok := adj.Additive[cat]; ok {
		score += a
	}
	return score
}

func clampCategory(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > model.MaxCategoryScore {
		return model.MaxCategoryScore
	}
	return v
}
