package model

// Category is one of the five fixed dimensions of the investment score.
type Category string

const (
	CategoryLocation  Category = "location"
	CategoryRisk      Category = "risk"
	CategoryFinancial Category = "financial"
	CategoryMarket    Category = "market"
	CategoryProfit    Category = "profit"
)

// Categories lists the five scoring categories in canonical order.
func Categories() []Category {
	return []Category{
		CategoryLocation,
		CategoryRisk,
		CategoryFinancial,
		CategoryMarket,
		CategoryProfit,
	}
}

// Scale constants for the 25-point-per-category x 5-category model.
const (
	MaxCategoryScore = 25.0
	MaxTotalScore    = 125.0
)

// ComponentScore is a single named contribution within a category score.
type ComponentScore struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// CategoryScore is the scored result for one category: a 0-25 score, a
// 0-100 confidence, and the ordered component contributions that sum
// (after any per-type component weighting) to the score.
type CategoryScore struct {
	Category   Category         `json:"category" yaml:"category"`
	Score      float64          `json:"score" yaml:"score"`
	Confidence float64          `json:"confidence" yaml:"confidence"`
	Components []ComponentScore `json:"components,omitempty" yaml:"components,omitempty"`
}

// ScoreBreakdown is the full scoring result for a single property.
// Created once per scoring call and immutable afterward.
type ScoreBreakdown struct {
	PropertyID      string                     `json:"property_id" yaml:"property_id"`
	Total           float64                    `json:"total" yaml:"total"`
	Grade           string                     `json:"grade" yaml:"grade"`
	Confidence      float64                    `json:"confidence" yaml:"confidence"`
	ConfidenceLabel string                     `json:"confidence_label" yaml:"confidence_label"`
	PropertyType    string                     `json:"property_type" yaml:"property_type"`
	Metro           string                     `json:"metro,omitempty" yaml:"metro,omitempty"`
	Categories      map[Category]CategoryScore `json:"categories" yaml:"categories"`
	EdgeCase        bool                       `json:"edge_case,omitempty" yaml:"edge_case,omitempty"`
	EdgeCaseReason  string                     `json:"edge_case_reason,omitempty" yaml:"edge_case_reason,omitempty"`
	Warnings        []string                   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// CategoryTotals returns just the numeric score per category, in the shape
// the weighted-score aggregation consumes.
func (b *ScoreBreakdown) CategoryTotals() map[Category]float64 {
	out := make(map[Category]float64, len(b.Categories))
	for cat, cs := range b.Categories {
		out[cat] = cs.Score
	}
	return out
}
