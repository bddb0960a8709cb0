package scoring

import "github.com/deedscope/research-cli/internal/model"

// Confidence labels, from sparsest to richest data.
const (
	ConfidenceVeryLow  = "Very Low"
	ConfidenceLow      = "Low"
	ConfidenceModerate = "Moderate"
	ConfidenceHigh     = "High"
	ConfidenceVeryHigh = "Very High"
)

// gradeBand is one letter band over the score-percentage scale.
type gradeBand struct {
	letter string
	floor  float64 // percentage of max score
}

// Bands are checked top-down; anything under 60% is an F.
var gradeBands = []gradeBand{
	{"A", 90},
	{"B", 80},
	{"C", 70},
	{"D", 60},
}

// LetterGrade maps a 0-125 total onto a letter grade with a +/- modifier
// derived from where the score falls within its band: the top third of a
// band earns "+", the bottom third "-". F carries no modifier.
func LetterGrade(total float64) string {
	pct := total / model.MaxTotalScore * 100
	for _, band := range gradeBands {
		if pct < band.floor {
			continue
		}
		width := 10.0
		pos := pct - band.floor
		switch {
		case pos >= width*2/3:
			return band.letter + "+"
		case pos < width/3:
			return band.letter + "-"
		default:
			return band.letter
		}
	}
	return "F"
}

// GradeLetter strips the modifier, leaving the bare band letter.
func GradeLetter(grade string) string {
	if grade == "" {
		return ""
	}
	return grade[:1]
}

// ConfidenceLabel maps a 0-100 confidence percentage onto the five-tier
// label consumed by display layers.
func ConfidenceLabel(pct float64) string {
	switch {
	case pct >= 80:
		return ConfidenceVeryHigh
	case pct >= 65:
		return ConfidenceHigh
	case pct >= 50:
		return ConfidenceModerate
	case pct >= 35:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}
