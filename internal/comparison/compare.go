package comparison

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deedscope/research-cli/internal/model"
	"github.com/deedscope/research-cli/internal/scoring"
)

// Default thresholds.
const (
	// DefaultMinConfidence is the average-confidence floor below which the
	// engine declines to recommend.
	DefaultMinConfidence = 50.0
	// DefaultSignificancePct is the tie threshold as a percentage of the
	// maximum score: 1.25 points per category, 6.25 points overall.
	DefaultSignificancePct = 5.0
)

// Magnitude bucket boundaries, as percentage of the maximum possible score.
const (
	smallPct       = 5.0
	moderatePct    = 10.0
	significantPct = 20.0
	majorPct       = 35.0
)

// Recommendation strength boundaries, as percentage of the maximum total.
const (
	moderateStrengthPct = 10.0
	strongStrengthPct   = 20.0
)

// Options tunes a comparison. The zero value means "use defaults".
type Options struct {
	// MinConfidenceThreshold is the average-confidence floor (0-100).
	MinConfidenceThreshold float64
	// SignificancePct is the tie threshold as a percentage of max score.
	SignificancePct float64
}

func (o *Options) minConfidence() float64 {
	if o == nil || o.MinConfidenceThreshold <= 0 {
		return DefaultMinConfidence
	}
	return o.MinConfidenceThreshold
}

func (o *Options) significancePct() float64 {
	if o == nil || o.SignificancePct <= 0 {
		return DefaultSignificancePct
	}
	return o.SignificancePct
}

// Comparer scores two properties independently and compares the results.
// Stateless and safe for concurrent use.
type Comparer struct {
	engine *scoring.Engine
}

// NewComparer creates a Comparer around the given scoring engine.
func NewComparer(engine *scoring.Engine) *Comparer {
	if engine == nil {
		engine = scoring.NewEngine()
	}
	return &Comparer{engine: engine}
}

// Compare produces the full two-property comparison. Aside from the result
// id and timestamp, output is a pure function of the inputs.
func (c *Comparer) Compare(p1, p2 model.PropertyData, opts *Options) (*model.ComparisonResult, error) {
	if p1.ID == "" {
		return nil, eris.Wrap(ErrMissingPropertyData, "property1")
	}
	if p2.ID == "" {
		return nil, eris.Wrap(ErrMissingPropertyData, "property2")
	}

	b1, err := c.engine.Score(p1)
	if err != nil {
		return nil, &ScoringError{PropertyID: p1.ID, Err: err}
	}
	b2, err := c.engine.Score(p2)
	if err != nil {
		return nil, &ScoringError{PropertyID: p2.ID, Err: err}
	}

	minConf := opts.minConfidence()
	avgConf := (b1.Confidence + b2.Confidence) / 2
	if avgConf < minConf {
		return nil, eris.Wrapf(ErrConfidenceTooLow, "average confidence %.1f below threshold %.1f", avgConf, minConf)
	}

	sigPct := opts.significancePct()

	res := &model.ComparisonResult{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Property1:   b1,
		Property2:   b2,
	}

	for _, cat := range model.Categories() {
		s1 := b1.Categories[cat].Score
		s2 := b2.Categories[cat].Score
		res.Categories = append(res.Categories, compareCategory(cat, s1, s2, sigPct))
	}

	diff := b1.Total - b2.Total
	res.ScoreDifferential = round2(math.Abs(diff))
	res.DifferentialPct = round2(math.Abs(diff) / model.MaxTotalScore * 100)
	res.Magnitude = magnitudeBucket(res.DifferentialPct)
	res.OverallWinner = declareWinner(diff, sigPct/100*model.MaxTotalScore)

	res.Recommendation, res.Strength = recommend(res.OverallWinner, res.DifferentialPct, b1.Grade, b2.Grade)

	buildNarrative(res)

	zap.L().Debug("comparison: complete",
		zap.String("comparison_id", res.ID),
		zap.String("property1", p1.ID),
		zap.String("property2", p2.ID),
		zap.String("winner", string(res.OverallWinner)),
		zap.String("strength", string(res.Strength)),
	)

	return res, nil
}

func compareCategory(cat model.Category, s1, s2, sigPct float64) model.CategoryComparison {
	diff := s1 - s2
	absDiff := math.Abs(diff)
	pct := absDiff / model.MaxCategoryScore * 100
	return model.CategoryComparison{
		Category:      cat,
		Score1:        s1,
		Score2:        s2,
		Difference:    round2(absDiff),
		DifferencePct: round2(pct),
		Magnitude:     magnitudeBucket(pct),
		Winner:        declareWinner(diff, sigPct/100*model.MaxCategoryScore),
	}
}

// declareWinner applies the tie rule: a difference below the significance
// threshold is a tie regardless of sign.
func declareWinner(diff, threshold float64) model.Winner {
	if math.Abs(diff) < threshold {
		return model.WinnerTie
	}
	if diff > 0 {
		return model.WinnerProperty1
	}
	return model.WinnerProperty2
}

// magnitudeBucket classifies a differential by its percentage of max score.
func magnitudeBucket(pct float64) model.Magnitude {
	switch {
	case pct < smallPct:
		return model.MagnitudeNegligible
	case pct < moderatePct:
		return model.MagnitudeSmall
	case pct < significantPct:
		return model.MagnitudeModerate
	case pct < majorPct:
		return model.MagnitudeSignificant
	default:
		return model.MagnitudeMajor
	}
}

// recommend maps (winner, differential, grades) to a recommendation. Grade
// agreement downgrades an otherwise-large numeric gap: grade bands are the
// more interpretable signal for end users.
func recommend(winner model.Winner, diffPct float64, grade1, grade2 string) (model.Winner, model.RecommendationStrength) {
	if winner == model.WinnerTie {
		return model.WinnerTie, model.StrengthEqual
	}

	strength := model.StrengthSlight
	switch {
	case diffPct >= strongStrengthPct:
		strength = model.StrengthStrong
	case diffPct >= moderateStrengthPct:
		strength = model.StrengthModerate
	}

	if scoring.GradeLetter(grade1) == scoring.GradeLetter(grade2) {
		switch strength {
		case model.StrengthStrong:
			strength = model.StrengthModerate
		case model.StrengthModerate:
			strength = model.StrengthSlight
		}
	}

	return winner, strength
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
