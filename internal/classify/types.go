// Package classify infers a property's structural/use category from
// partial, often-missing signals. Classification is deterministic and
// total: every input maps to a defined category, never an error.
package classify

// PropertyType is the closed set of structural/use categories. Exactly one
// value is assigned per property once classification completes.
type PropertyType string

const (
	SingleFamily     PropertyType = "single_family_residential"
	SmallMultiFamily PropertyType = "small_multi_family"
	MultiFamily      PropertyType = "multi_family"
	Condo            PropertyType = "condo"
	Townhouse        PropertyType = "townhouse"
	ManufacturedHome PropertyType = "manufactured_home"
	Commercial       PropertyType = "commercial"
	Industrial       PropertyType = "industrial"
	MixedUse         PropertyType = "mixed_use"
	VacantLand       PropertyType = "vacant_land"
	Agricultural     PropertyType = "agricultural"
	Unknown          PropertyType = "unknown"
)

// All lists every concrete category plus Unknown.
func All() []PropertyType {
	return []PropertyType{
		SingleFamily, SmallMultiFamily, MultiFamily, Condo, Townhouse,
		ManufacturedHome, Commercial, Industrial, MixedUse, VacantLand,
		Agricultural, Unknown,
	}
}

// Label returns a human-readable name for display in narratives.
func (p PropertyType) Label() string {
	switch p {
	case SingleFamily:
		return "single-family residential"
	case SmallMultiFamily:
		return "small multi-family"
	case MultiFamily:
		return "multi-family"
	case Condo:
		return "condo"
	case Townhouse:
		return "townhouse"
	case ManufacturedHome:
		return "manufactured home"
	case Commercial:
		return "commercial"
	case Industrial:
		return "industrial"
	case MixedUse:
		return "mixed-use"
	case VacantLand:
		return "vacant land"
	case Agricultural:
		return "agricultural"
	default:
		return "unknown"
	}
}
