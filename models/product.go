package models

// Product represents a sellable print product. BasePrice is the per-unit
// fallback used when no BasePricePer100 rule matches a request.
type Product struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	BasePrice    float64       `json:"basePrice"`
	DefaultWorks []ProductWork `json:"defaultWorks,omitempty"`
	CreatedAt    string        `json:"createdAt,omitempty"`
}

// ProductWork joins a product to one of its default operations, in order.
type ProductWork struct {
	WorkID          int64   `json:"workId"`
	WorkName        string  `json:"workName"`
	DefaultQuantity float64 `json:"defaultQuantity"`
}

// CreateProductRequest is the request body for creating or updating a product.
type CreateProductRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	BasePrice float64 `json:"basePrice"`
	Works     []struct {
		WorkID          int64   `json:"workId"`
		DefaultQuantity float64 `json:"defaultQuantity"`
	} `json:"works,omitempty"`
}
