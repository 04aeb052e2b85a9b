package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop-crm/models"
)

func i64Ptr(v int64) *int64     { return &v }
func intPtr(v int) *int         { return &v }
func strPtr(v string) *string   { return &v }
func f64Ptr(v float64) *float64 { return &v }

func baseRule(id int64, priority int, value float64, productID *int64, min, max *int) models.CalculationRule {
	return models.CalculationRule{
		ID:          id,
		RuleType:    models.RuleBasePricePer100,
		Name:        "base",
		Value:       value,
		Priority:    priority,
		IsActive:    true,
		ProductID:   productID,
		MinQuantity: min,
		MaxQuantity: max,
	}
}

func TestMatchRules_BaseHighestPriorityWins(t *testing.T) {
	rules := []models.CalculationRule{
		baseRule(1, 10, 9, nil, nil, nil),
		baseRule(2, 20, 8, nil, nil, nil),
	}
	req := &models.PricingRequest{ProductID: 7, Quantity: 50}

	matched := MatchRules(rules, req)

	require.NotNil(t, matched.Base)
	assert.Equal(t, int64(2), matched.Base.ID)
}

func TestMatchRules_ExactProductBeatsGlobalOnPriorityTie(t *testing.T) {
	rules := []models.CalculationRule{
		baseRule(1, 10, 9, nil, nil, nil),
		baseRule(2, 10, 8, i64Ptr(7), nil, nil),
	}
	req := &models.PricingRequest{ProductID: 7, Quantity: 50}

	matched := MatchRules(rules, req)

	require.NotNil(t, matched.Base)
	assert.Equal(t, int64(2), matched.Base.ID)
}

func TestMatchRules_LowestIDWinsOnFullTie(t *testing.T) {
	rules := []models.CalculationRule{
		baseRule(5, 10, 9, nil, nil, nil),
		baseRule(3, 10, 8, nil, nil, nil),
	}
	req := &models.PricingRequest{ProductID: 7, Quantity: 50}

	matched := MatchRules(rules, req)

	require.NotNil(t, matched.Base)
	assert.Equal(t, int64(3), matched.Base.ID)
}

func TestMatchRules_BaseQuantityRangeIsInclusive(t *testing.T) {
	rules := []models.CalculationRule{
		baseRule(1, 10, 9, nil, intPtr(1), intPtr(99)),
	}

	for _, tc := range []struct {
		quantity int
		matches  bool
	}{
		{1, true},
		{50, true},
		{99, true},
		{100, false},
	} {
		req := &models.PricingRequest{ProductID: 7, Quantity: tc.quantity}
		matched := MatchRules(rules, req)
		if tc.matches {
			assert.NotNil(t, matched.Base, "quantity %d", tc.quantity)
		} else {
			assert.Nil(t, matched.Base, "quantity %d", tc.quantity)
		}
	}
}

func TestMatchRules_OtherProductExcluded(t *testing.T) {
	rules := []models.CalculationRule{
		baseRule(1, 10, 9, i64Ptr(8), nil, nil),
	}
	req := &models.PricingRequest{ProductID: 7, Quantity: 50}

	matched := MatchRules(rules, req)
	assert.Nil(t, matched.Base)
}

func TestMatchRules_ExtrasAreAdditive(t *testing.T) {
	rules := []models.CalculationRule{
		{ID: 1, RuleType: models.RuleExtraCostPerUnit, Name: "lam", Value: 0.03, Priority: 5, IsActive: true, ExtraName: strPtr("Matt Lamination")},
		{ID: 2, RuleType: models.RuleExtraCostFlat, Name: "lam setup", Value: 2, Priority: 1, IsActive: true, ExtraName: strPtr("Matt Lamination")},
		{ID: 3, RuleType: models.RuleExtraCostPerUnit, Name: "cut", Value: 0.01, Priority: 5, IsActive: true, ExtraName: strPtr("Cutting")},
	}
	req := &models.PricingRequest{
		ProductID: 7,
		Quantity:  50,
		ExtraWorks: []models.ExtraWorkSelection{
			{Name: "Matt Lamination", Duration: 1},
			{Name: "Cutting", Duration: 0.5},
		},
	}

	matched := MatchRules(rules, req)

	require.Len(t, matched.Extras, 3)
	// Selection order first, then priority desc, then ID asc.
	assert.Equal(t, int64(1), matched.Extras[0].Rule.ID)
	assert.Equal(t, int64(2), matched.Extras[1].Rule.ID)
	assert.Equal(t, int64(3), matched.Extras[2].Rule.ID)
}

func TestMatchRules_ExtraLaminationCondition(t *testing.T) {
	rules := []models.CalculationRule{
		{ID: 1, RuleType: models.RuleExtraCostPerUnit, Name: "gloss only", Value: 0.05, IsActive: true,
			ExtraName: strPtr("Foil"), Lamination: strPtr("gloss")},
	}

	noLam := &models.PricingRequest{ProductID: 7, Quantity: 10,
		ExtraWorks: []models.ExtraWorkSelection{{Name: "Foil", Duration: 1}}}
	assert.Empty(t, MatchRules(rules, noLam).Extras)

	gloss := &models.PricingRequest{ProductID: 7, Quantity: 10, Lamination: strPtr("gloss"),
		ExtraWorks: []models.ExtraWorkSelection{{Name: "Foil", Duration: 1}}}
	assert.Len(t, MatchRules(rules, gloss).Extras, 1)

	matt := &models.PricingRequest{ProductID: 7, Quantity: 10, Lamination: strPtr("matt"),
		ExtraWorks: []models.ExtraWorkSelection{{Name: "Foil", Duration: 1}}}
	assert.Empty(t, MatchRules(rules, matt).Extras)
}

func TestMatchRules_AdjustmentDoesNotStack(t *testing.T) {
	rules := []models.CalculationRule{
		{ID: 1, RuleType: models.RuleQuantityAdjustmentPercent, Name: "small run", Value: 10, Priority: 5, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
		{ID: 2, RuleType: models.RuleQuantityAdjustmentPercent, Name: "rush", Value: 20, Priority: 9, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
	}
	req := &models.PricingRequest{ProductID: 7, Quantity: 50}

	matched := MatchRules(rules, req)

	require.NotNil(t, matched.Adjustment)
	assert.Equal(t, int64(2), matched.Adjustment.ID)
}

func TestMatchRules_DiscountOnlyFromRequest(t *testing.T) {
	rules := []models.CalculationRule{
		{ID: 1, RuleType: models.RuleClientDiscountMultiplier, Name: "vip", Value: 0.9, IsActive: true},
	}
	req := &models.PricingRequest{ProductID: 7, Quantity: 50}
	assert.Nil(t, MatchRules(rules, req).Discount)

	req.ClientDiscount = &rules[0]
	require.NotNil(t, MatchRules(rules, req).Discount)

	// A wrongly typed rule supplied as discount is ignored.
	wrong := baseRule(2, 1, 9, nil, nil, nil)
	req.ClientDiscount = &wrong
	assert.Nil(t, MatchRules(rules, req).Discount)
}
