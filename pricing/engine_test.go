package pricing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printshop-crm/models"
	"printshop-crm/repository"
)

// stubRepository is an in-memory Repository for engine tests.
type stubRepository struct {
	rules     []models.CalculationRule
	products  map[int64]models.Product
	materials map[int64]models.Material
	works     map[string]models.Work
}

func (s *stubRepository) ListActiveRules(ctx context.Context) ([]models.CalculationRule, error) {
	var active []models.CalculationRule
	for _, r := range s.rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

func (s *stubRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, repository.ErrNotFound)
	}
	return &p, nil
}

func (s *stubRepository) GetMaterial(ctx context.Context, id int64) (*models.Material, error) {
	m, ok := s.materials[id]
	if !ok {
		return nil, fmt.Errorf("material %d: %w", id, repository.ErrNotFound)
	}
	return &m, nil
}

func (s *stubRepository) GetWorkByName(ctx context.Context, name string) (*models.Work, error) {
	w, ok := s.works[name]
	if !ok {
		return nil, fmt.Errorf("work %q: %w", name, repository.ErrNotFound)
	}
	return &w, nil
}

func newTestEngine(repo *stubRepository) *Engine {
	return NewEngine(repo, zap.NewNop())
}

func scenarioRepo() *stubRepository {
	return &stubRepository{
		products: map[int64]models.Product{
			7: {ID: 7, Name: "Business cards", BasePrice: 0.20},
		},
		materials: map[int64]models.Material{},
		works: map[string]models.Work{
			"Matt Lamination": {ID: 1, Name: "Matt Lamination", PricePerUnit: 5, CostPerUnit: 1.5, Unit: models.UnitPiece},
		},
	}
}

func TestCalculatePrice_NoMatchingRulesFallsBackToProductBasePrice(t *testing.T) {
	repo := scenarioRepo()
	engine := newTestEngine(repo)

	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{ProductID: 7, Quantity: 10})
	require.NoError(t, err)

	assert.InDelta(t, 0.20, result.UnitPrice, tolerance)
	assert.InDelta(t, 2.0, result.TotalPrice, tolerance)
	assert.Empty(t, result.AppliedRules)
}

func TestCalculatePrice_ScenarioA(t *testing.T) {
	repo := scenarioRepo()
	repo.rules = []models.CalculationRule{
		{ID: 1, RuleType: models.RuleBasePricePer100, Name: "Cards 1-99", Value: 9, Priority: 10, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
	}
	engine := newTestEngine(repo)

	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{ProductID: 7, Quantity: 50})
	require.NoError(t, err)

	assert.InDelta(t, 0.09, result.UnitPrice, tolerance)
	assert.InDelta(t, 4.50, result.TotalPrice, tolerance)
	require.Len(t, result.AppliedRules, 1)
}

func TestCalculatePrice_ScenarioB(t *testing.T) {
	repo := scenarioRepo()
	repo.rules = []models.CalculationRule{
		{ID: 1, RuleType: models.RuleBasePricePer100, Name: "Cards 1-99", Value: 9, Priority: 10, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
		{ID: 2, RuleType: models.RuleExtraCostPerUnit, Name: "Matt Lamination", Value: 0.03, Priority: 5, IsActive: true, ExtraName: strPtr("Matt Lamination")},
	}
	engine := newTestEngine(repo)

	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{
		ProductID:  7,
		Quantity:   50,
		ExtraWorks: []models.ExtraWorkSelection{{Name: "Matt Lamination", Duration: 1}},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.12, result.UnitPrice, tolerance)
	assert.InDelta(t, 6.00, result.TotalPrice, tolerance)
	assert.Len(t, result.AppliedRules, 2)
}

func TestCalculatePrice_ScenarioC(t *testing.T) {
	repo := scenarioRepo()
	repo.rules = []models.CalculationRule{
		{ID: 1, RuleType: models.RuleBasePricePer100, Name: "Cards 1-99", Value: 9, Priority: 10, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
		{ID: 2, RuleType: models.RuleExtraCostPerUnit, Name: "Matt Lamination", Value: 0.03, Priority: 5, IsActive: true, ExtraName: strPtr("Matt Lamination")},
		{ID: 3, RuleType: models.RuleQuantityAdjustmentPercent, Name: "Small run", Value: 10, Priority: 5, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
	}
	engine := newTestEngine(repo)

	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{
		ProductID:  7,
		Quantity:   50,
		ExtraWorks: []models.ExtraWorkSelection{{Name: "Matt Lamination", Duration: 1}},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.132, result.UnitPrice, tolerance)
	assert.InDelta(t, 6.60, result.TotalPrice, tolerance)
	assert.InDelta(t, result.TotalPrice, result.UnitPrice*50, tolerance)
}

func TestCalculatePrice_ScenarioD(t *testing.T) {
	repo := scenarioRepo()
	repo.rules = []models.CalculationRule{
		{ID: 1, RuleType: models.RuleBasePricePer100, Name: "Cards 1-99", Value: 9, Priority: 10, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
		{ID: 2, RuleType: models.RuleExtraCostPerUnit, Name: "Matt Lamination", Value: 0.03, Priority: 5, IsActive: true, ExtraName: strPtr("Matt Lamination")},
		{ID: 3, RuleType: models.RuleQuantityAdjustmentPercent, Name: "Small run", Value: 10, Priority: 5, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
	}
	engine := newTestEngine(repo)

	discount := &models.CalculationRule{ID: 9, RuleType: models.RuleClientDiscountMultiplier, Name: "VIP", Value: 0.9, IsActive: true}
	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{
		ProductID:      7,
		Quantity:       50,
		ExtraWorks:     []models.ExtraWorkSelection{{Name: "Matt Lamination", Duration: 1}},
		ClientDiscount: discount,
	})
	require.NoError(t, err)

	assert.InDelta(t, 5.94, result.TotalPrice, tolerance)
	assert.InDelta(t, 0.1188, result.UnitPrice, tolerance)
	assert.InDelta(t, result.TotalPrice, result.UnitPrice*50, tolerance)
	assert.Len(t, result.AppliedRules, 4)
}

func TestCalculatePrice_RejectsMissingQuantity(t *testing.T) {
	engine := newTestEngine(scenarioRepo())

	for _, req := range []*models.PricingRequest{
		nil,
		{ProductID: 7, Quantity: 0},
		{ProductID: 7, Quantity: -3},
	} {
		result, err := engine.CalculatePrice(context.Background(), req)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrQuantityRequired)
	}
}

func TestCalculatePrice_UnknownProductFailsCalculation(t *testing.T) {
	engine := newTestEngine(scenarioRepo())

	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{ProductID: 999, Quantity: 10})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCalculatePrice_Idempotent(t *testing.T) {
	repo := scenarioRepo()
	repo.rules = []models.CalculationRule{
		{ID: 1, RuleType: models.RuleBasePricePer100, Name: "Cards 1-99", Value: 9, Priority: 10, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
		{ID: 2, RuleType: models.RuleExtraCostPerUnit, Name: "Matt Lamination", Value: 0.03, Priority: 5, IsActive: true, ExtraName: strPtr("Matt Lamination")},
	}
	engine := newTestEngine(repo)
	req := &models.PricingRequest{
		ProductID:  7,
		Quantity:   50,
		ExtraWorks: []models.ExtraWorkSelection{{Name: "Matt Lamination", Duration: 1}},
	}

	first, err := engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)
	second, err := engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculatePrice_ManualOverrideRoundTrip(t *testing.T) {
	repo := scenarioRepo()
	repo.rules = []models.CalculationRule{
		{ID: 1, RuleType: models.RuleBasePricePer100, Name: "Cards 1-99", Value: 9, Priority: 10, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
	}
	engine := newTestEngine(repo)
	req := &models.PricingRequest{ProductID: 7, Quantity: 50}

	auto, err := engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)

	manualReq := *req
	manualReq.Manual = &models.ManualPrice{UnitPrice: auto.UnitPrice, TotalPrice: auto.TotalPrice}
	manual, err := engine.CalculatePrice(context.Background(), &manualReq)
	require.NoError(t, err)

	assert.InDelta(t, auto.UnitPrice, manual.UnitPrice, tolerance)
	assert.InDelta(t, auto.TotalPrice, manual.TotalPrice, tolerance)
	assert.InDelta(t, auto.MarginPercent, manual.MarginPercent, tolerance)
	assert.Empty(t, manual.AppliedRules)

	// Toggling the override back off reproduces the automatic result exactly.
	again, err := engine.CalculatePrice(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, auto, again)
}

func TestCalculatePrice_MissingWorkReportsCostErrorWithValidPrices(t *testing.T) {
	repo := scenarioRepo()
	repo.rules = []models.CalculationRule{
		{ID: 1, RuleType: models.RuleBasePricePer100, Name: "Cards 1-99", Value: 9, Priority: 10, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
		{ID: 2, RuleType: models.RuleExtraCostPerUnit, Name: "Embossing", Value: 0.05, Priority: 5, IsActive: true, ExtraName: strPtr("Embossing")},
	}
	engine := newTestEngine(repo)

	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{
		ProductID:  7,
		Quantity:   50,
		ExtraWorks: []models.ExtraWorkSelection{{Name: "Embossing", Duration: 1}},
	})

	var costErr *CostError
	require.ErrorAs(t, err, &costErr)
	require.NotNil(t, result)
	assert.False(t, result.CostKnown)
	assert.InDelta(t, 0.14, result.UnitPrice, tolerance)
	assert.InDelta(t, 7.0, result.TotalPrice, tolerance)
	assert.Contains(t, costErr.Missing[0], "Embossing")
}

func TestCalculatePrice_ManualOverrideWithMissingMaterialStillReturnsPrices(t *testing.T) {
	engine := newTestEngine(scenarioRepo())

	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{
		ProductID:  7,
		Quantity:   10,
		MaterialID: i64Ptr(404),
		Manual:     &models.ManualPrice{UnitPrice: 2, TotalPrice: 20},
	})

	var costErr *CostError
	require.ErrorAs(t, err, &costErr)
	require.NotNil(t, result)
	assert.False(t, result.CostKnown)
	assert.InDelta(t, 20.0, result.TotalPrice, tolerance)
}

func TestCalculatePrice_ZeroTotalYieldsZeroMargin(t *testing.T) {
	repo := scenarioRepo()
	repo.products[8] = models.Product{ID: 8, Name: "Sample", BasePrice: 0}
	engine := newTestEngine(repo)

	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{ProductID: 8, Quantity: 5})
	require.NoError(t, err)

	assert.Zero(t, result.TotalPrice)
	assert.Zero(t, result.MarginPercent)
}

func TestCalculatePrice_CostAndMarginWithMaterialAndWork(t *testing.T) {
	repo := scenarioRepo()
	repo.rules = []models.CalculationRule{
		{ID: 1, RuleType: models.RuleBasePricePer100, Name: "Cards 1-99", Value: 9, Priority: 10, IsActive: true, MinQuantity: intPtr(1), MaxQuantity: intPtr(99)},
	}
	repo.materials[3] = models.Material{ID: 3, Name: "Premium paper", UnitPrice: 0.02, Unit: models.UnitPiece}
	engine := newTestEngine(repo)

	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{
		ProductID:  7,
		Quantity:   50,
		MaterialID: i64Ptr(3),
		ExtraWorks: []models.ExtraWorkSelection{{Name: "Matt Lamination", Duration: 1}},
	})
	require.NoError(t, err)

	// Material 0.02*50 = 1.00, lamination cost 1.5*1 = 1.50.
	assert.InDelta(t, 2.50, result.TotalCost, tolerance)
	assert.True(t, result.CostKnown)
	require.Positive(t, result.TotalPrice)
	assert.InDelta(t, (result.TotalPrice-2.50)/result.TotalPrice*100, result.MarginPercent, tolerance)
}

// errorRepository fails rule listing to verify repository failures propagate.
type errorRepository struct{ stubRepository }

func (e *errorRepository) ListActiveRules(ctx context.Context) ([]models.CalculationRule, error) {
	return nil, errors.New("connection refused")
}

func TestCalculatePrice_RepositoryFailurePropagates(t *testing.T) {
	repo := &errorRepository{stubRepository: *scenarioRepo()}
	engine := NewEngine(repo, zap.NewNop())

	result, err := engine.CalculatePrice(context.Background(), &models.PricingRequest{ProductID: 7, Quantity: 10})
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load active rules")
}
