package models

// MeasureUnit is the unit a material or work is priced in.
type MeasureUnit string

const (
	UnitPiece  MeasureUnit = "piece"
	UnitArea   MeasureUnit = "area" // priced per square meter
	UnitWeight MeasureUnit = "weight"
	UnitVolume MeasureUnit = "volume"
	UnitLength MeasureUnit = "length"
)

// Material represents a raw material (paper, vinyl, ink). StockLevel is
// informational only; the pricing engine never enforces it.
type Material struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	UnitPrice  float64     `json:"unitPrice"`
	Unit       MeasureUnit `json:"unit"`
	StockLevel *float64    `json:"stockLevel,omitempty"`
}

// Work represents an operation (cutting, lamination, binding) with separate
// revenue and cost sides.
type Work struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	PricePerUnit float64     `json:"pricePerUnit"`
	CostPerUnit  float64     `json:"costPerUnit"`
	Unit         MeasureUnit `json:"unit"`
}
