package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/deedscope/research-cli/internal/model"
)

// Lots above this size classify as agricultural rather than vacant land
// when no structure is present.
const agriculturalLotAcres = 5.0

// rule is one step of the classification fallthrough. Later rules only run
// when earlier ones are inconclusive; the final rule always concludes.
type rule struct {
	name   string
	detect func(sig model.PropertySignals) (PropertyType, bool)
}

// rules are evaluated top to bottom. Building-area data is frequently
// absent in the source records, so the assessed-improvement-value and
// explicit flags outrank the building-area fallback.
var rules = []rule{
	{"explicit_type", detectExplicitType},
	{"external_hint", detectExternalHint},
	{"zoning_code", detectZoning},
	{"land_use_text", detectLandUse},
	{"zero_improvement_value", detectZeroImprovement},
	{"vacant_lot_flag", detectVacantFlag},
	{"mobile_home_flag", detectMobileFlag},
	{"building_area_fallback", detectBuildingArea},
}

// DetectPropertyType classifies a property from its signals. Total: always
// returns a defined category, never Unknown-as-absence and never an error.
func DetectPropertyType(sig model.PropertySignals) PropertyType {
	for _, r := range rules {
		if pt, ok := r.detect(sig); ok {
			return pt
		}
	}
	// Unreachable: the building-area fallback always concludes.
	return SingleFamily
}

func detectExplicitType(sig model.PropertySignals) (PropertyType, bool) {
	raw := strings.TrimSpace(sig.PropertyType)
	if raw == "" {
		return Unknown, false
	}
	if pt := NormalizePropertyType(raw); pt != Unknown {
		return pt, true
	}
	return Unknown, false
}

func detectExternalHint(sig model.PropertySignals) (PropertyType, bool) {
	h := sig.Hint
	if h == nil {
		return Unknown, false
	}

	// Class / use-type strings run through the same keyword rules as the
	// free-text land-use step.
	for _, s := range []string{h.PropertyClass, h.UseType} {
		if pt, ok := matchKeywords(s); ok {
			return pt, true
		}
	}

	switch {
	case h.UnitCount == 1:
		return SingleFamily, true
	case h.UnitCount >= 2 && h.UnitCount <= 4:
		return SmallMultiFamily, true
	case h.UnitCount > 4:
		return MultiFamily, true
	}

	bt := strings.ToLower(h.BuildingType)
	switch {
	case strings.Contains(bt, "condo"):
		return Condo, true
	case strings.Contains(bt, "town"):
		return Townhouse, true
	case strings.Contains(bt, "mobile"), strings.Contains(bt, "manufactured"):
		return ManufacturedHome, true
	}
	return Unknown, false
}

var residentialZonePattern = regexp.MustCompile(`^R(\d+)`)

func detectZoning(sig model.PropertySignals) (PropertyType, bool) {
	code := strings.ToUpper(strings.TrimSpace(sig.ZoningCode))
	if code == "" {
		return Unknown, false
	}

	// Mixed-use prefixes must be checked before the bare M (industrial)
	// family.
	if strings.HasPrefix(code, "MU") || strings.HasPrefix(code, "MX") {
		return MixedUse, true
	}
	if strings.HasPrefix(code, "RSF") || strings.HasPrefix(code, "SF") {
		return SingleFamily, true
	}
	if strings.HasPrefix(code, "RM") || strings.HasPrefix(code, "MF") {
		return MultiFamily, true
	}
	if m := residentialZonePattern.FindStringSubmatch(code); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			switch {
			case n <= 1:
				return SingleFamily, true
			case n <= 4:
				return SmallMultiFamily, true
			default:
				return MultiFamily, true
			}
		}
	}
	if strings.HasPrefix(code, "C") {
		return Commercial, true
	}
	if strings.HasPrefix(code, "I") || strings.HasPrefix(code, "M") {
		return Industrial, true
	}
	if strings.HasPrefix(code, "A") {
		return Agricultural, true
	}
	return Unknown, false
}

func detectLandUse(sig model.PropertySignals) (PropertyType, bool) {
	return matchKeywords(sig.LandUse)
}

// detectZeroImprovement treats an assessed improvement value of exactly
// zero as the strongest "no structure" signal. A nil value is not evidence
// either way.
func detectZeroImprovement(sig model.PropertySignals) (PropertyType, bool) {
	if sig.ImprovementValue == nil || *sig.ImprovementValue != 0 {
		return Unknown, false
	}
	return vacantOrAgricultural(sig), true
}

func detectVacantFlag(sig model.PropertySignals) (PropertyType, bool) {
	if !sig.IsVacantLot {
		return Unknown, false
	}
	return vacantOrAgricultural(sig), true
}

func detectMobileFlag(sig model.PropertySignals) (PropertyType, bool) {
	if !sig.IsLikelyMobileHome {
		return Unknown, false
	}
	return ManufacturedHome, true
}

// detectBuildingArea is the terminal rule and always concludes.
func detectBuildingArea(sig model.PropertySignals) (PropertyType, bool) {
	if sig.BuildingAreaSqFt == nil || *sig.BuildingAreaSqFt == 0 {
		return vacantOrAgricultural(sig), true
	}
	return SingleFamily, true
}

func vacantOrAgricultural(sig model.PropertySignals) PropertyType {
	if sig.LotSizeAcres != nil && *sig.LotSizeAcres > agriculturalLotAcres {
		return Agricultural
	}
	return VacantLand
}
