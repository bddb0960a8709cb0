package weights

import (
	"github.com/deedscope/research-cli/internal/classify"
	"github.com/deedscope/research-cli/internal/model"
)

// componentKey addresses a (property type, category, component) triple.
type componentKey struct {
	Type      classify.PropertyType
	Category  model.Category
	Component string
}

// componentOverrides lists the few sub-scores that should count more or
// less for a given asset class. Category scorers apply these before the
// category total reaches the aggregator.
var componentOverrides = map[componentKey]float64{
	{classify.VacantLand, model.CategoryLocation, "walk_score"}:        0.5,
	{classify.VacantLand, model.CategoryProfit, "rental_demand"}:       0.6,
	{classify.Agricultural, model.CategoryLocation, "school_quality"}:  0.3,
	{classify.MultiFamily, model.CategoryFinancial, "cash_flow"}:       1.4,
	{classify.MultiFamily, model.CategoryProfit, "rental_demand"}:      1.3,
	{classify.ManufacturedHome, model.CategoryRisk, "flood_zone"}:      1.2,
	{classify.Commercial, model.CategoryMarket, "comparable_sales"}:    0.8,
	{classify.Commercial, model.CategoryLocation, "school_quality"}:    0.4,
	{classify.Industrial, model.CategoryLocation, "walk_score"}:        0.5,
	{classify.SmallMultiFamily, model.CategoryFinancial, "cash_flow"}:  1.2,
}

// ComponentMultiplier returns the weight multiplier for one component score
// within a category, defaulting to 1.0 when no override is defined.
func ComponentMultiplier(pt classify.PropertyType, cat model.Category, component string) float64 {
	if m, ok := componentOverrides[componentKey{pt, cat, component}]; ok {
		return m
	}
	return 1.0
}
