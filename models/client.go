package models

// Client represents a customer relationship. DiscountRuleID optionally points
// at a ClientDiscountMultiplier rule; the order editor resolves it and passes
// the rule to the pricing engine.
type Client struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Company        string `json:"company,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	DiscountRuleID *int64 `json:"discountRuleId,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}
