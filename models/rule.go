package models

import "fmt"

// RuleType identifies the pricing rule variant. The meaning of Value depends
// on the type: a price per 100 units, a per-unit or flat surcharge in euros,
// a signed percentage, or a multiplier.
type RuleType string

const (
	RuleBasePricePer100           RuleType = "BasePricePer100"
	RuleExtraCostPerUnit          RuleType = "ExtraCostPerUnit"
	RuleExtraCostFlat             RuleType = "ExtraCostFlat"
	RuleQuantityAdjustmentPercent RuleType = "QuantityAdjustmentPercent"
	RuleClientDiscountMultiplier  RuleType = "ClientDiscountMultiplier"
)

// CalculationRule is a pricing rule record. Nil condition fields mean
// "applies to any": a nil ProductID matches every product, a nil Lamination
// matches any lamination, nil quantity bounds are unbounded.
type CalculationRule struct {
	ID          int64    `json:"id"`
	RuleType    RuleType `json:"ruleType"`
	Name        string   `json:"name"`
	Value       float64  `json:"value"`
	Priority    int      `json:"priority"`
	IsActive    bool     `json:"isActive"`
	ProductID   *int64   `json:"productId,omitempty"`
	Lamination  *string  `json:"lamination,omitempty"`
	ExtraName   *string  `json:"extraName,omitempty"`
	MinQuantity *int     `json:"minQuantity,omitempty"`
	MaxQuantity *int     `json:"maxQuantity,omitempty"`
}

// IsExtra reports whether the rule is one of the extra-cost variants.
func (r *CalculationRule) IsExtra() bool {
	return r.RuleType == RuleExtraCostPerUnit || r.RuleType == RuleExtraCostFlat
}

// Validate enforces the per-variant required fields. Rules are validated when
// created or updated, never during matching.
func (r *CalculationRule) Validate() error {
	switch r.RuleType {
	case RuleBasePricePer100, RuleExtraCostPerUnit, RuleExtraCostFlat,
		RuleQuantityAdjustmentPercent, RuleClientDiscountMultiplier:
	default:
		return fmt.Errorf("unknown rule type %q", r.RuleType)
	}

	if r.Name == "" {
		return fmt.Errorf("rule name is required")
	}

	if r.IsExtra() && (r.ExtraName == nil || *r.ExtraName == "") {
		return fmt.Errorf("extraName is required for %s rules", r.RuleType)
	}

	if r.MinQuantity != nil && *r.MinQuantity < 1 {
		return fmt.Errorf("minQuantity must be at least 1")
	}
	if r.MinQuantity != nil && r.MaxQuantity != nil && *r.MaxQuantity < *r.MinQuantity {
		return fmt.Errorf("maxQuantity %d is below minQuantity %d", *r.MaxQuantity, *r.MinQuantity)
	}

	if r.RuleType == RuleBasePricePer100 && r.Value < 0 {
		return fmt.Errorf("base price cannot be negative")
	}
	if r.RuleType == RuleClientDiscountMultiplier && r.Value <= 0 {
		return fmt.Errorf("discount multiplier must be positive")
	}

	return nil
}

// Describe returns the human-readable audit line recorded when the rule fires.
func (r *CalculationRule) Describe() string {
	switch r.RuleType {
	case RuleBasePricePer100:
		return fmt.Sprintf("%s: base price %.2f EUR per 100", r.Name, r.Value)
	case RuleExtraCostPerUnit:
		return fmt.Sprintf("%s: +%.2f EUR per unit", r.Name, r.Value)
	case RuleExtraCostFlat:
		return fmt.Sprintf("%s: +%.2f EUR flat", r.Name, r.Value)
	case RuleQuantityAdjustmentPercent:
		return fmt.Sprintf("%s: %+.0f%% quantity adjustment", r.Name, r.Value)
	case RuleClientDiscountMultiplier:
		return fmt.Sprintf("%s: x%.2f client discount", r.Name, r.Value)
	}
	return r.Name
}
