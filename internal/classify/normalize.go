package classify

import "strings"

// aliases maps common exact labels and abbreviations that are too short or
// too ambiguous for substring matching.
var aliases = map[string]PropertyType{
	"sfr":    SingleFamily,
	"sfh":    SingleFamily,
	"sfd":    SingleFamily,
	"mfr":    MultiFamily,
	"mh":     ManufacturedHome,
	"ag":     Agricultural,
	"res":    SingleFamily,
	"com":    Commercial,
	"ind":    Industrial,
	"land":   VacantLand,
	"lot":    VacantLand,
	"duplex": SmallMultiFamily,
}

// keywordRule is one ordered substring rule. Earlier rules win, so the more
// specific phrasings sit above the generic ones.
type keywordRule struct {
	result   PropertyType
	keywords []string
}

var keywordRules = []keywordRule{
	{SingleFamily, []string{"single family", "single-family", "single fam", "sfr", "detached"}},
	{SmallMultiFamily, []string{"duplex", "triplex", "fourplex", "quadplex", "two family", "three family", "four family"}},
	{MultiFamily, []string{"apartment", "multi family", "multi-family", "multifamily"}},
	{Condo, []string{"condo"}},
	{Townhouse, []string{"townhouse", "townhome", "row house", "rowhouse"}},
	{ManufacturedHome, []string{"mobile home", "manufactured", "mobile"}},
	{MixedUse, []string{"mixed use", "mixed-use"}},
	{Commercial, []string{"commercial", "retail", "office", "store", "restaurant", "shopping"}},
	{Industrial, []string{"industrial", "warehouse", "manufacturing", "factory"}},
	{Agricultural, []string{"agricultural", "agriculture", "farm", "ranch", "pasture", "orchard", "crop", "timber"}},
	{VacantLand, []string{"vacant", "unimproved", "undeveloped"}},
}

// NormalizePropertyType maps an arbitrary free-text label onto the closed
// enumeration. Used by the classifier's explicit-type step and directly by
// data-import paths. Unknown input yields Unknown, never an error.
func NormalizePropertyType(raw string) PropertyType {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return Unknown
	}

	for _, pt := range All() {
		if s == string(pt) {
			return pt
		}
	}
	if pt, ok := aliases[s]; ok {
		return pt
	}
	if pt, ok := matchKeywords(s); ok {
		return pt
	}
	return Unknown
}

// matchKeywords applies the ordered substring rules to a free-text label.
func matchKeywords(text string) (PropertyType, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return Unknown, false
	}
	for _, kr := range keywordRules {
		for _, kw := range kr.keywords {
			if strings.Contains(s, kw) {
				return kr.result, true
			}
		}
	}
	return Unknown, false
}
