// Package weights resolves the five category weights used to score a
// specific property. Weight tables are hand-authored, code-level constants:
// changing them changes scoring semantics and goes through the same review
// as algorithm changes.
package weights

import (
	"github.com/deedscope/research-cli/internal/classify"
	"github.com/deedscope/research-cli/internal/model"
)

// Scale is the normalization target matching the 25-point-per-category x
// 5-category = 125-point total model.
const Scale = 5.0

// Tolerance for weight-sum checks.
const Tolerance = 1e-6

// CategoryWeights holds one non-negative weight per scoring category.
// A weight of exactly zero is legal: it fully suppresses a category.
type CategoryWeights struct {
	Location  float64 `json:"location" yaml:"location"`
	Risk      float64 `json:"risk" yaml:"risk"`
	Financial float64 `json:"financial" yaml:"financial"`
	Market    float64 `json:"market" yaml:"market"`
	Profit    float64 `json:"profit" yaml:"profit"`
}

// Sum returns the total of the five weights.
func (w CategoryWeights) Sum() float64 {
	return w.Location + w.Risk + w.Financial + w.Market + w.Profit
}

// Get returns the weight for a category.
func (w CategoryWeights) Get(cat model.Category) float64 {
	switch cat {
	case model.CategoryLocation:
		return w.Location
	case model.CategoryRisk:
		return w.Risk
	case model.CategoryFinancial:
		return w.Financial
	case model.CategoryMarket:
		return w.Market
	case model.CategoryProfit:
		return w.Profit
	default:
		return 0
	}
}

// byType maps each property type to the hand-authored weights reflecting
// what matters for that asset class. Multi-family emphasizes profit and
// financials; vacant land emphasizes location and market; agricultural
// suppresses location entirely.
var byType = map[classify.PropertyType]CategoryWeights{
	classify.SingleFamily:     {Location: 1.2, Risk: 1.0, Financial: 1.0, Market: 0.9, Profit: 0.9},
	classify.SmallMultiFamily: {Location: 1.0, Risk: 0.9, Financial: 1.1, Market: 0.9, Profit: 1.1},
	classify.MultiFamily:      {Location: 0.8, Risk: 0.8, Financial: 1.3, Market: 0.8, Profit: 1.3},
	classify.Condo:            {Location: 1.3, Risk: 0.9, Financial: 1.0, Market: 1.0, Profit: 0.8},
	classify.Townhouse:        {Location: 1.2, Risk: 0.9, Financial: 1.0, Market: 1.0, Profit: 0.9},
	classify.ManufacturedHome: {Location: 0.9, Risk: 1.2, Financial: 1.0, Market: 0.9, Profit: 1.0},
	classify.Commercial:       {Location: 1.0, Risk: 1.0, Financial: 1.2, Market: 1.0, Profit: 0.8},
	classify.Industrial:       {Location: 0.8, Risk: 1.1, Financial: 1.2, Market: 1.0, Profit: 0.9},
	classify.MixedUse:         {Location: 1.1, Risk: 0.9, Financial: 1.1, Market: 1.0, Profit: 0.9},
	classify.VacantLand:       {Location: 1.5, Risk: 1.0, Financial: 0.7, Market: 1.3, Profit: 0.5},
	classify.Agricultural:     {Location: 0.0, Risk: 1.2, Financial: 1.3, Market: 1.3, Profit: 1.2},
	classify.Unknown:          {Location: 1.0, Risk: 1.0, Financial: 1.0, Market: 1.0, Profit: 1.0},
}

// ForPropertyType returns the category weights for a property type. Types
// missing from the table resolve to the Unknown row. When normalize is
// true the weights are rescaled to sum to Scale.
func ForPropertyType(pt classify.PropertyType, normalize bool) CategoryWeights {
	w, ok := byType[pt]
	if !ok {
		w = byType[classify.Unknown]
	}
	if normalize {
		return Normalize(w, Scale)
	}
	return w
}

// Normalize rescales weights so they sum to target. Idempotent up to the
// target scale. A zero-sum input (a corrupt table) falls back to equal
// weights of 1.0 each rather than dividing by zero.
func Normalize(w CategoryWeights, target float64) CategoryWeights {
	sum := w.Sum()
	if sum <= 0 {
		return CategoryWeights{Location: 1, Risk: 1, Financial: 1, Market: 1, Profit: 1}
	}
	f := target / sum
	return CategoryWeights{
		Location:  w.Location * f,
		Risk:      w.Risk * f,
		Financial: w.Financial * f,
		Market:    w.Market * f,
		Profit:    w.Profit * f,
	}
}
