package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestCalculationRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    CalculationRule
		wantErr string
	}{
		{
			name: "valid base rule",
			rule: CalculationRule{RuleType: RuleBasePricePer100, Name: "Cards", Value: 9, MinQuantity: intp(1), MaxQuantity: intp(99)},
		},
		{
			name:    "unknown type",
			rule:    CalculationRule{RuleType: "Mystery", Name: "x"},
			wantErr: "unknown rule type",
		},
		{
			name:    "name required",
			rule:    CalculationRule{RuleType: RuleBasePricePer100},
			wantErr: "name is required",
		},
		{
			name:    "extra per unit requires extraName",
			rule:    CalculationRule{RuleType: RuleExtraCostPerUnit, Name: "Lam", Value: 0.03},
			wantErr: "extraName is required",
		},
		{
			name:    "extra flat requires non-empty extraName",
			rule:    CalculationRule{RuleType: RuleExtraCostFlat, Name: "Setup", Value: 5, ExtraName: strp("")},
			wantErr: "extraName is required",
		},
		{
			name: "valid extra",
			rule: CalculationRule{RuleType: RuleExtraCostPerUnit, Name: "Lam", Value: 0.03, ExtraName: strp("Matt Lamination")},
		},
		{
			name:    "min quantity below one",
			rule:    CalculationRule{RuleType: RuleQuantityAdjustmentPercent, Name: "Bulk", Value: -5, MinQuantity: intp(0)},
			wantErr: "minQuantity",
		},
		{
			name:    "inverted range",
			rule:    CalculationRule{RuleType: RuleBasePricePer100, Name: "Cards", Value: 9, MinQuantity: intp(100), MaxQuantity: intp(50)},
			wantErr: "below minQuantity",
		},
		{
			name:    "discount must be positive",
			rule:    CalculationRule{RuleType: RuleClientDiscountMultiplier, Name: "VIP", Value: 0},
			wantErr: "must be positive",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestCalculationRuleDescribe(t *testing.T) {
	base := CalculationRule{RuleType: RuleBasePricePer100, Name: "Cards 1-99", Value: 9}
	assert.Equal(t, "Cards 1-99: base price 9.00 EUR per 100", base.Describe())

	adj := CalculationRule{RuleType: RuleQuantityAdjustmentPercent, Name: "Small run", Value: 10}
	assert.Equal(t, "Small run: +10% quantity adjustment", adj.Describe())

	disc := CalculationRule{RuleType: RuleClientDiscountMultiplier, Name: "VIP", Value: 0.9}
	assert.Equal(t, "VIP: x0.90 client discount", disc.Describe())
}
