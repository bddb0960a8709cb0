package model

import "time"

// Winner identifies which side of a comparison came out ahead.
type Winner string

const (
	WinnerProperty1 Winner = "property1"
	WinnerProperty2 Winner = "property2"
	WinnerTie       Winner = "tie"
)

// Magnitude classifies a score differential by its percentage of the
// maximum possible score.
type Magnitude string

const (
	MagnitudeNegligible  Magnitude = "negligible"
	MagnitudeSmall       Magnitude = "small"
	MagnitudeModerate    Magnitude = "moderate"
	MagnitudeSignificant Magnitude = "significant"
	MagnitudeMajor       Magnitude = "major"
)

// RecommendationStrength grades how firmly the engine prefers one property.
type RecommendationStrength string

const (
	StrengthEqual    RecommendationStrength = "properties_equal"
	StrengthSlight   RecommendationStrength = "slight_preference"
	StrengthModerate RecommendationStrength = "moderate_preference"
	StrengthStrong   RecommendationStrength = "strong_preference"
)

// CategoryComparison is the per-category detail of a two-property comparison.
type CategoryComparison struct {
	Category      Category  `json:"category" yaml:"category"`
	Score1        float64   `json:"score1" yaml:"score1"`
	Score2        float64   `json:"score2" yaml:"score2"`
	Difference    float64   `json:"difference" yaml:"difference"`
	DifferencePct float64   `json:"difference_pct" yaml:"difference_pct"`
	Magnitude     Magnitude `json:"magnitude" yaml:"magnitude"`
	Winner        Winner    `json:"winner" yaml:"winner"`
}

// ComparisonResult pairs two score breakdowns with the ranked, explained
// recommendation derived from them. Aside from ID and GeneratedAt, the
// result is a pure function of its inputs.
type ComparisonResult struct {
	ID          string    `json:"id" yaml:"id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Property1 *ScoreBreakdown `json:"property1" yaml:"property1"`
	Property2 *ScoreBreakdown `json:"property2" yaml:"property2"`

	OverallWinner     Winner    `json:"overall_winner" yaml:"overall_winner"`
	ScoreDifferential float64   `json:"score_differential" yaml:"score_differential"`
	DifferentialPct   float64   `json:"differential_pct" yaml:"differential_pct"`
	Magnitude         Magnitude `json:"magnitude" yaml:"magnitude"`

	Categories []CategoryComparison `json:"categories" yaml:"categories"`

	Recommendation Winner                 `json:"recommendation" yaml:"recommendation"`
	Strength       RecommendationStrength `json:"strength" yaml:"strength"`

	Summary        string   `json:"summary" yaml:"summary"`
	KeyDifferences []string `json:"key_differences,omitempty" yaml:"key_differences,omitempty"`
	TradeOffs      []string `json:"trade_offs,omitempty" yaml:"trade_offs,omitempty"`
	Warnings       []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
