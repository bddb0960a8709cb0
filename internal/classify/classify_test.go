package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deedscope/research-cli/internal/model"
)

func fptr(v float64) *float64 { return &v }

func TestDetectPropertyTypeIsTotal(t *testing.T) {
	// All-null signals must still classify.
	got := DetectPropertyType(model.PropertySignals{})
	assert.Equal(t, VacantLand, got)

	assert.NotPanics(t, func() {
		_ = DetectPropertyType(model.PropertySignals{
			PropertyType: "???", ZoningCode: "???", LandUse: "???",
			Hint: &model.ExternalClassificationHint{},
		})
	})
}

func TestDetectExplicitTypeShortCircuits(t *testing.T) {
	sig := model.PropertySignals{
		PropertyType: "duplex",
		ZoningCode:   "C-1", // would classify commercial if reached
	}
	assert.Equal(t, SmallMultiFamily, DetectPropertyType(sig))

	// An explicit "unknown" does not short-circuit.
	sig = model.PropertySignals{PropertyType: "unknown", ZoningCode: "C-1"}
	assert.Equal(t, Commercial, DetectPropertyType(sig))
}

func TestDetectExternalHint(t *testing.T) {
	tests := []struct {
		name string
		hint model.ExternalClassificationHint
		want PropertyType
	}{
		{"property class keyword", model.ExternalClassificationHint{PropertyClass: "Residential - Single Family"}, SingleFamily},
		{"use type keyword", model.ExternalClassificationHint{UseType: "Warehouse"}, Industrial},
		{"one unit", model.ExternalClassificationHint{UnitCount: 1}, SingleFamily},
		{"three units", model.ExternalClassificationHint{UnitCount: 3}, SmallMultiFamily},
		{"twelve units", model.ExternalClassificationHint{UnitCount: 12}, MultiFamily},
		{"condo building type", model.ExternalClassificationHint{BuildingType: "Condominium Tower"}, Condo},
		{"townhome building type", model.ExternalClassificationHint{BuildingType: "Townhome"}, Townhouse},
		{"mobile building type", model.ExternalClassificationHint{BuildingType: "Mobile Home"}, ManufacturedHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := model.PropertySignals{Hint: &tt.hint}
			assert.Equal(t, tt.want, DetectPropertyType(sig))
		})
	}

	// Class keyword outranks unit count within the hint step.
	sig := model.PropertySignals{Hint: &model.ExternalClassificationHint{
		PropertyClass: "Commercial",
		UnitCount:     1,
	}}
	assert.Equal(t, Commercial, DetectPropertyType(sig))
}

func TestDetectZoning(t *testing.T) {
	tests := []struct {
		code string
		want PropertyType
	}{
		{"R1", SingleFamily},
		{"r1-a", SingleFamily},
		{"RSF-5", SingleFamily},
		{"SF-2", SingleFamily},
		{"R2", SmallMultiFamily},
		{"R3", SmallMultiFamily},
		{"R4", SmallMultiFamily},
		{"R5", MultiFamily},
		{"R10", MultiFamily},
		{"R40", MultiFamily},
		{"RM-2", MultiFamily},
		{"MF-16", MultiFamily},
		{"C-1", Commercial},
		{"CBD", Commercial},
		{"I-2", Industrial},
		{"M1", Industrial},
		{"MU-2", MixedUse},
		{"MX", MixedUse},
		{"A-1", Agricultural},
		{"AG", Agricultural},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := DetectPropertyType(model.PropertySignals{ZoningCode: tt.code})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectLandUse(t *testing.T) {
	tests := []struct {
		landUse string
		want    PropertyType
	}{
		{"Single Family Residence", SingleFamily},
		{"APARTMENT COMPLEX", MultiFamily},
		{"Retail Storefront", Commercial},
		{"Mixed Use Retail/Residential", MixedUse},
		{"Row House", Townhouse},
		{"Pasture land", Agricultural},
	}
	for _, tt := range tests {
		t.Run(tt.landUse, func(t *testing.T) {
			got := DetectPropertyType(model.PropertySignals{LandUse: tt.landUse})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZeroImprovementValueOverridesBuildingArea(t *testing.T) {
	// Zero improvement value signals no structure even when a stale
	// building-area figure is present.
	sig := model.PropertySignals{
		ImprovementValue: fptr(0),
		BuildingAreaSqFt: fptr(1200),
	}
	assert.Equal(t, VacantLand, DetectPropertyType(sig))

	// Large lot shifts the vacant split to agricultural.
	sig.LotSizeAcres = fptr(12)
	assert.Equal(t, Agricultural, DetectPropertyType(sig))

	// A nil improvement value is not evidence of vacancy.
	sig = model.PropertySignals{BuildingAreaSqFt: fptr(1200)}
	assert.Equal(t, SingleFamily, DetectPropertyType(sig))

	// Nonzero improvement value does not trigger the rule.
	sig = model.PropertySignals{ImprovementValue: fptr(85000), BuildingAreaSqFt: fptr(1400)}
	assert.Equal(t, SingleFamily, DetectPropertyType(sig))
}

func TestVacantAndMobileFlags(t *testing.T) {
	sig := model.PropertySignals{IsVacantLot: true, BuildingAreaSqFt: fptr(900)}
	assert.Equal(t, VacantLand, DetectPropertyType(sig))

	sig = model.PropertySignals{IsVacantLot: true, LotSizeAcres: fptr(40)}
	assert.Equal(t, Agricultural, DetectPropertyType(sig))

	sig = model.PropertySignals{IsLikelyMobileHome: true}
	assert.Equal(t, ManufacturedHome, DetectPropertyType(sig))
}

func TestBuildingAreaFallback(t *testing.T) {
	tests := []struct {
		name string
		sig  model.PropertySignals
		want PropertyType
	}{
		{"nil area small lot", model.PropertySignals{LotSizeAcres: fptr(0.25)}, VacantLand},
		{"zero area", model.PropertySignals{BuildingAreaSqFt: fptr(0)}, VacantLand},
		{"nil area large lot", model.PropertySignals{LotSizeAcres: fptr(20)}, Agricultural},
		{"positive area", model.PropertySignals{BuildingAreaSqFt: fptr(1850)}, SingleFamily},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPropertyType(tt.sig))
		})
	}
}

func TestNormalizePropertyType(t *testing.T) {
	tests := []struct {
		in   string
		want PropertyType
	}{
		{"SFR", SingleFamily},
		{"single_family_residential", SingleFamily},
		{"Duplex", SmallMultiFamily},
		{"ag", Agricultural},
		{"Farm land", Agricultural},
		{"CONDOMINIUM", Condo},
		{"manufactured housing", ManufacturedHome},
		{"vacant residential lot", VacantLand},
		{"", Unknown},
		{"gibberish", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePropertyType(tt.in))
		})
	}
}
