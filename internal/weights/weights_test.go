package weights

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deedscope/research-cli/internal/classify"
	"github.com/deedscope/research-cli/internal/model"
)

func TestForPropertyTypeNormalizedSum(t *testing.T) {
	for _, pt := range classify.All() {
		t.Run(string(pt), func(t *testing.T) {
			w := ForPropertyType(pt, true)
			assert.InDelta(t, Scale, w.Sum(), Tolerance)
		})
	}

	// Unlisted types resolve through the Unknown row.
	w := ForPropertyType(classify.PropertyType("martian_dome"), true)
	assert.InDelta(t, Scale, w.Sum(), Tolerance)
}

func TestWeightsNeverNegative(t *testing.T) {
	for _, pt := range classify.All() {
		w := ForPropertyType(pt, false)
		for _, cat := range model.Categories() {
			assert.GreaterOrEqual(t, w.Get(cat), 0.0, "%s/%s", pt, cat)
		}
	}
}

func TestZeroWeightIsLegal(t *testing.T) {
	w := ForPropertyType(classify.Agricultural, true)
	assert.Zero(t, w.Location, "agricultural suppresses location")
	assert.InDelta(t, Scale, w.Sum(), Tolerance)
}

func TestNormalize(t *testing.T) {
	t.Run("zero sum falls back to equal weights", func(t *testing.T) {
		w := Normalize(CategoryWeights{}, Scale)
		assert.Equal(t, CategoryWeights{Location: 1, Risk: 1, Financial: 1, Market: 1, Profit: 1}, w)
	})

	t.Run("round trip is idempotent up to target scale", func(t *testing.T) {
		in := CategoryWeights{Location: 2, Risk: 0.5, Financial: 3, Market: 1, Profit: 0.25}
		direct := Normalize(in, Scale)
		viaUnit := Normalize(Normalize(in, 1.0), Scale)
		for _, cat := range model.Categories() {
			assert.InDelta(t, direct.Get(cat), viaUnit.Get(cat), Tolerance)
		}
	})

	t.Run("unit target sums to 1", func(t *testing.T) {
		w := Normalize(ForPropertyType(classify.Condo, false), 1.0)
		assert.InDelta(t, 1.0, w.Sum(), Tolerance)
	})
}

func TestComponentMultiplier(t *testing.T) {
	assert.InDelta(t, 0.5, ComponentMultiplier(classify.VacantLand, model.CategoryLocation, "walk_score"), 1e-9)
	assert.InDelta(t, 1.4, ComponentMultiplier(classify.MultiFamily, model.CategoryFinancial, "cash_flow"), 1e-9)
	// Default multiplier for any unlisted triple.
	assert.InDelta(t, 1.0, ComponentMultiplier(classify.SingleFamily, model.CategoryLocation, "walk_score"), 1e-9)
	assert.InDelta(t, 1.0, ComponentMultiplier(classify.VacantLand, model.CategoryRisk, "walk_score"), 1e-9)
}

func TestAdjustCategoryScore(t *testing.T) {
	t.Run("no entry passes through", func(t *testing.T) {
		got := AdjustCategoryScore("WY", "", model.CategoryMarket, 17.3)
		assert.InDelta(t, 17.3, got, 1e-9)
	})

	t.Run("state additive", func(t *testing.T) {
		got := AdjustCategoryScore("FL", "", model.CategoryRisk, 20)
		assert.InDelta(t, 18.5, got, 1e-9)
	})

	t.Run("metro layers on top of state", func(t *testing.T) {
		// FL state: market +0.5; Miami metro: market x1.08.
		got := AdjustCategoryScore("FL", "Miami", model.CategoryMarket, 20)
		assert.InDelta(t, (20+0.5)*1.08, got, 1e-9)
	})

	t.Run("clamped to category scale", func(t *testing.T) {
		assert.InDelta(t, 0, AdjustCategoryScore("FL", "", model.CategoryRisk, 0.5), 1e-9)
		assert.InDelta(t, model.MaxCategoryScore, AdjustCategoryScore("TX", "Austin", model.CategoryMarket, 24.9), 1e-9)
	})

	t.Run("unknown metro in known state uses state layer only", func(t *testing.T) {
		got := AdjustCategoryScore("TX", "El Paso", model.CategoryMarket, 10)
		assert.InDelta(t, 10.5, got, 1e-9)
	})
}

func TestHasRegionalAdjustment(t *testing.T) {
	assert.True(t, HasRegionalAdjustment("FL", ""))
	assert.True(t, HasRegionalAdjustment("NV", "Las Vegas"))
	assert.False(t, HasRegionalAdjustment("NV", ""))
	assert.False(t, HasRegionalAdjustment("WY", "Cheyenne"))
}

func TestTableWeightsFinite(t *testing.T) {
	for pt, w := range byType {
		assert.False(t, math.IsNaN(w.Sum()) || math.IsInf(w.Sum(), 0), "%s", pt)
		assert.Greater(t, w.Sum(), 0.0, "%s: table row must have positive sum", pt)
	}
}
