// Package model defines the value types exchanged between the scoring
// engine's components: raw property signals in, score breakdowns and
// comparison results out. Everything here is a plain serializable value
// with no behavior beyond small accessors.
package model

// Coordinate is a latitude/longitude pair in degrees.
// The zero value (0,0) is treated as "absent", never as a real location.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// IsZero reports whether the coordinate should be treated as absent.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// Valid reports whether the coordinate is present and within range.
func (c Coordinate) Valid() bool {
	if c.IsZero() {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// ExternalClassificationHint carries property classification fields from a
// third-party enrichment source. All fields are optional; a nil hint means
// no enrichment data was available.
type ExternalClassificationHint struct {
	PropertyClass string `json:"property_class,omitempty" yaml:"property_class,omitempty"`
	UseType       string `json:"use_type,omitempty" yaml:"use_type,omitempty"`
	UnitCount     int    `json:"unit_count,omitempty" yaml:"unit_count,omitempty"`
	BuildingType  string `json:"building_type,omitempty" yaml:"building_type,omitempty"`
}

// PropertySignals is the subset of a property's attributes relevant to
// property-type classification. Numeric fields are pointers because the
// source records frequently omit them; nil means "not recorded", which the
// classifier treats differently from an explicit zero.
type PropertySignals struct {
	PropertyType       string                      `json:"property_type,omitempty" yaml:"property_type,omitempty"`
	ZoningCode         string                      `json:"zoning_code,omitempty" yaml:"zoning_code,omitempty"`
	LandUse            string                      `json:"land_use,omitempty" yaml:"land_use,omitempty"`
	BuildingAreaSqFt   *float64                    `json:"building_area_sqft,omitempty" yaml:"building_area_sqft,omitempty"`
	LotSizeAcres       *float64                    `json:"lot_size_acres,omitempty" yaml:"lot_size_acres,omitempty"`
	ImprovementValue   *float64                    `json:"improvement_value,omitempty" yaml:"improvement_value,omitempty"`
	IsVacantLot        bool                        `json:"is_vacant_lot,omitempty" yaml:"is_vacant_lot,omitempty"`
	IsLikelyMobileHome bool                        `json:"is_likely_mobile_home,omitempty" yaml:"is_likely_mobile_home,omitempty"`
	Hint               *ExternalClassificationHint `json:"external_hint,omitempty" yaml:"external_hint,omitempty"`
}

// CategoryInput holds the pre-computed sub-scores and confidence supplied by
// an upstream data provider for one scoring category. Component scores are
// already normalized so that their (multiplier-adjusted) sum lands on the
// 0-25 category scale; confidence is 0-100.
type CategoryInput struct {
	Components []ComponentScore `json:"components" yaml:"components"`
	Confidence float64          `json:"confidence" yaml:"confidence"`
}

// PropertyData is the full input contract for scoring a single property.
// It arrives fully parsed from the persistence/API layer; the engine never
// talks to data providers directly.
type PropertyData struct {
	ID      string      `json:"id" yaml:"id"`
	Address string      `json:"address,omitempty" yaml:"address,omitempty"`
	City    string      `json:"city,omitempty" yaml:"city,omitempty"`
	County  string      `json:"county,omitempty" yaml:"county,omitempty"`
	State   string      `json:"state" yaml:"state"`
	Coords  *Coordinate `json:"coords,omitempty" yaml:"coords,omitempty"`

	Signals PropertySignals            `json:"signals" yaml:"signals"`
	Inputs  map[Category]CategoryInput `json:"inputs" yaml:"inputs"`

	// EdgeCase marks a property flagged by upstream screening as
	// structurally atypical or non-investable (e.g. legally unbuildable).
	// It is carried through scoring as a tag, not an exclusion.
	EdgeCase       bool   `json:"edge_case,omitempty" yaml:"edge_case,omitempty"`
	EdgeCaseReason string `json:"edge_case_reason,omitempty" yaml:"edge_case_reason,omitempty"`
}
