package comparison

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deedscope/research-cli/internal/classify"
	"github.com/deedscope/research-cli/internal/model"
)

// titleCaser renders category names for display.
var titleCaser = cases.Title(language.AmericanEnglish)

// buildNarrative fills the summary, key differences, trade-offs, and
// warnings. Every sentence is a fixed template parameterized only by
// already-computed numbers and names, so output is fully reproducible.
func buildNarrative(res *model.ComparisonResult) {
	res.Summary = summarize(res)
	res.KeyDifferences = keyDifferences(res)
	res.TradeOffs = tradeOffs(res)
	res.Warnings = warnings(res)
}

func summarize(res *model.ComparisonResult) string {
	b1, b2 := res.Property1, res.Property2

	if res.OverallWinner == model.WinnerTie {
		return fmt.Sprintf(
			"Properties %s and %s are effectively equivalent investments: %.1f (%s) vs %.1f (%s), within the significance threshold.",
			b1.PropertyID, b2.PropertyID, b1.Total, b1.Grade, b2.Total, b2.Grade,
		)
	}

	winner, loser := b1, b2
	if res.OverallWinner == model.WinnerProperty2 {
		winner, loser = b2, b1
	}
	return fmt.Sprintf(
		"Property %s is the stronger investment: %.1f (%s) vs %.1f (%s), a %s lead of %.1f points (%.1f%% of maximum). Recommendation: %s for property %s.",
		winner.PropertyID, winner.Total, winner.Grade, loser.Total, loser.Grade,
		res.Magnitude, res.ScoreDifferential, res.DifferentialPct,
		strengthPhrase(res.Strength), winner.PropertyID,
	)
}

func strengthPhrase(s model.RecommendationStrength) string {
	switch s {
	case model.StrengthStrong:
		return "strong preference"
	case model.StrengthModerate:
		return "moderate preference"
	case model.StrengthSlight:
		return "slight preference"
	default:
		return "no preference"
	}
}

func keyDifferences(res *model.ComparisonResult) []string {
	var out []string

	if res.Property1.PropertyType != res.Property2.PropertyType {
		out = append(out, fmt.Sprintf(
			"The properties are different asset classes (%s vs %s), so their category weights differ.",
			classify.PropertyType(res.Property1.PropertyType).Label(),
			classify.PropertyType(res.Property2.PropertyType).Label(),
		))
	}

	for _, cc := range res.Categories {
		if cc.Winner == model.WinnerTie {
			continue
		}
		if cc.Magnitude == model.MagnitudeNegligible || cc.Magnitude == model.MagnitudeSmall {
			continue
		}
		out = append(out, fmt.Sprintf(
			"%s: property %s leads by %.1f points (%s).",
			titleCaser.String(string(cc.Category)), winnerID(res, cc.Winner), cc.Difference, cc.Magnitude,
		))
	}
	return out
}

func tradeOffs(res *model.ComparisonResult) []string {
	if res.OverallWinner == model.WinnerTie {
		return nil
	}

	loserSide := model.WinnerProperty2
	if res.OverallWinner == model.WinnerProperty2 {
		loserSide = model.WinnerProperty1
	}

	var out []string
	for _, cc := range res.Categories {
		if cc.Winner != loserSide {
			continue
		}
		out = append(out, fmt.Sprintf(
			"Property %s trails overall but leads on %s by %.1f points.",
			winnerID(res, loserSide), titleCaser.String(string(cc.Category)), cc.Difference,
		))
	}
	return out
}

func warnings(res *model.ComparisonResult) []string {
	var out []string
	for _, b := range []*model.ScoreBreakdown{res.Property1, res.Property2} {
		if b.EdgeCase {
			reason := b.EdgeCaseReason
			if reason == "" {
				reason = "flagged non-investable by automated screening"
			}
			out = append(out, fmt.Sprintf("Property %s is an edge case: %s.", b.PropertyID, reason))
		}
		if b.Confidence < 65 {
			out = append(out, fmt.Sprintf("Confidence for property %s is %s (%.0f%%); treat the comparison with care.", b.PropertyID, b.ConfidenceLabel, b.Confidence))
		}
	}
	return out
}

func winnerID(res *model.ComparisonResult, w model.Winner) string {
	if w == model.WinnerProperty1 {
		return res.Property1.PropertyID
	}
	return res.Property2.PropertyID
}
