package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"printshop-crm/models"
)

func TestCalculateCost_PieceMaterial(t *testing.T) {
	snap := &Snapshot{
		Material: &models.Material{ID: 1, Name: "Cardboard", UnitPrice: 0.05, Unit: models.UnitPiece},
		Works:    map[string]models.Work{},
	}
	req := &models.PricingRequest{Quantity: 200, MaterialID: i64Ptr(1)}

	out := CalculateCost(snap, req)

	assert.InDelta(t, 10.0, out.TotalCost, tolerance)
}

func TestCalculateCost_AreaMaterialConvertsMillimetersToSquareMeters(t *testing.T) {
	snap := &Snapshot{
		Material: &models.Material{ID: 1, Name: "Vinyl", UnitPrice: 8, Unit: models.UnitArea},
		Works:    map[string]models.Work{},
	}
	req := &models.PricingRequest{
		Quantity:   10,
		MaterialID: i64Ptr(1),
		WidthMM:    f64Ptr(500),
		HeightMM:   f64Ptr(400),
	}

	out := CalculateCost(snap, req)

	// 500mm x 400mm = 0.2 m2 per unit, 2 m2 total, 16 EUR.
	assert.InDelta(t, 16.0, out.TotalCost, tolerance)
}

func TestCalculateCost_AreaMaterialWithoutDimensionsCostsNothing(t *testing.T) {
	snap := &Snapshot{
		Material: &models.Material{ID: 1, Name: "Vinyl", UnitPrice: 8, Unit: models.UnitArea},
		Works:    map[string]models.Work{},
	}
	req := &models.PricingRequest{Quantity: 10, MaterialID: i64Ptr(1)}

	out := CalculateCost(snap, req)
	assert.Zero(t, out.TotalCost)
}

func TestCalculateCost_WeightMaterialUsesRawQuantity(t *testing.T) {
	snap := &Snapshot{
		Material: &models.Material{ID: 1, Name: "Ink", UnitPrice: 2, Unit: models.UnitWeight},
		Works:    map[string]models.Work{},
	}
	req := &models.PricingRequest{Quantity: 3, MaterialID: i64Ptr(1), WidthMM: f64Ptr(100), HeightMM: f64Ptr(100)}

	out := CalculateCost(snap, req)
	assert.InDelta(t, 6.0, out.TotalCost, tolerance)
}

func TestCalculateCost_WorkCostsUseDuration(t *testing.T) {
	snap := &Snapshot{
		Works: map[string]models.Work{
			"Cutting": {ID: 1, Name: "Cutting", PricePerUnit: 20, CostPerUnit: 12, Unit: models.UnitPiece},
			"Binding": {ID: 2, Name: "Binding", PricePerUnit: 30, CostPerUnit: 18, Unit: models.UnitPiece},
		},
	}
	req := &models.PricingRequest{
		Quantity: 5,
		ExtraWorks: []models.ExtraWorkSelection{
			{Name: "Cutting", Duration: 0.5},
			{Name: "Binding", Duration: 2},
		},
	}

	out := CalculateCost(snap, req)

	// 12*0.5 + 18*2 = 42
	assert.InDelta(t, 42.0, out.TotalCost, tolerance)
	assert.Len(t, out.Lines, 2)
}

func TestMarginPercent(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		cost  float64
		want  float64
	}{
		{"normal", 100, 60, 40},
		{"zero price guards division", 0, 10, 0},
		{"negative price guards too", -5, 10, 0},
		{"loss-making", 100, 150, -50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, MarginPercent(tc.price, tc.cost), tolerance)
		})
	}
}
