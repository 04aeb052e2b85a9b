package models

// ExtraWorkSelection is one operator-selected add-on on a pricing request.
// Duration is the work quantity in the work's own unit (hours, pieces).
type ExtraWorkSelection struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
}

// ManualPrice carries operator-entered prices when rule evaluation is
// bypassed. The caller owns both values; the engine passes them through.
type ManualPrice struct {
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// PricingRequest is the input to a single price calculation. It is never
// persisted. ClientDiscount is resolved by the caller; the engine does not
// decide which client applies.
type PricingRequest struct {
	ProductID      int64                `json:"productId"`
	Quantity       int                  `json:"quantity"`
	MaterialID     *int64               `json:"materialId,omitempty"`
	WidthMM        *float64             `json:"widthMm,omitempty"`
	HeightMM       *float64             `json:"heightMm,omitempty"`
	Lamination     *string              `json:"lamination,omitempty"`
	ExtraWorks     []ExtraWorkSelection `json:"extraWorks,omitempty"`
	Pages          *int                 `json:"pages,omitempty"`
	ClientDiscount *CalculationRule     `json:"clientDiscount,omitempty"`
	Manual         *ManualPrice         `json:"manual,omitempty"`
}

// BreakdownLine is one itemized component of the result. Kind is "price" for
// revenue-side lines and "cost" for cost-side lines.
type BreakdownLine struct {
	Label  string  `json:"label"`
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount"`
}

// PricingResult is the complete outcome of one calculation. UnitPrice times
// Quantity always equals TotalPrice for display purposes. CostKnown is false
// when a referenced material or work could not be resolved; prices are still
// valid in that case.
type PricingResult struct {
	UnitPrice     float64         `json:"unitPrice"`
	TotalPrice    float64         `json:"totalPrice"`
	TotalCost     float64         `json:"totalCost"`
	MarginPercent float64         `json:"marginPercent"`
	CostKnown     bool            `json:"costKnown"`
	Breakdown     []BreakdownLine `json:"breakdown"`
	AppliedRules  []string        `json:"appliedRules"`
}
