package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printshop-crm/models"
	"printshop-crm/pricing"
	"printshop-crm/repository"
)

type stubRecords struct {
	rules     []models.CalculationRule
	products  map[int64]models.Product
	materials map[int64]models.Material
	works     map[string]models.Work
}

func (s *stubRecords) ListActiveRules(ctx context.Context) ([]models.CalculationRule, error) {
	return s.rules, nil
}

func (s *stubRecords) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, repository.ErrNotFound)
	}
	return &p, nil
}

func (s *stubRecords) GetMaterial(ctx context.Context, id int64) (*models.Material, error) {
	m, ok := s.materials[id]
	if !ok {
		return nil, fmt.Errorf("material %d: %w", id, repository.ErrNotFound)
	}
	return &m, nil
}

func (s *stubRecords) GetWorkByName(ctx context.Context, name string) (*models.Work, error) {
	w, ok := s.works[name]
	if !ok {
		return nil, fmt.Errorf("work %q: %w", name, repository.ErrNotFound)
	}
	return &w, nil
}

func (s *stubRecords) ListDefaultWorks(ctx context.Context, productID int64) ([]models.ProductWork, error) {
	return nil, nil
}

func (s *stubRecords) GetRule(ctx context.Context, id int64) (*models.CalculationRule, error) {
	for _, r := range s.rules {
		if r.ID == id {
			rule := r
			return &rule, nil
		}
	}
	return nil, fmt.Errorf("rule %d: %w", id, repository.ErrNotFound)
}

type stubClients struct {
	clients map[int64]models.Client
}

func (s *stubClients) List(ctx context.Context) ([]models.Client, error) { return nil, nil }

func (s *stubClients) Get(ctx context.Context, id int64) (*models.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return nil, fmt.Errorf("client %d: %w", id, repository.ErrNotFound)
	}
	return &c, nil
}

func (s *stubClients) Create(ctx context.Context, client *models.Client) error { return nil }
func (s *stubClients) Update(ctx context.Context, client *models.Client) error { return nil }
func (s *stubClients) Delete(ctx context.Context, id int64) error              { return nil }

func newTestServer(records *stubRecords, clients *stubClients) *httptest.Server {
	logger := zap.NewNop()
	engine := pricing.NewEngine(records, logger)
	ctrl := NewPricingController(engine, records, clients, logger)

	r := chi.NewRouter()
	r.Post("/admin/pricing/calculate", ctrl.Calculate)
	return httptest.NewServer(r)
}

func i64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int     { return &v }

func cardRecords() *stubRecords {
	return &stubRecords{
		rules: []models.CalculationRule{
			{
				ID:          1,
				RuleType:    models.RuleBasePricePer100,
				Name:        "Cards 1-99",
				Value:       9.0,
				Priority:    10,
				IsActive:    true,
				ProductID:   i64Ptr(1),
				MaxQuantity: intPtr(99),
			},
			{
				ID:       2,
				RuleType: models.RuleClientDiscountMultiplier,
				Name:     "Agency discount",
				Value:    0.90,
				Priority: 5,
				IsActive: true,
			},
		},
		products: map[int64]models.Product{
			1: {ID: 1, Name: "Business Cards", BasePrice: 0.15},
		},
		works: map[string]models.Work{},
	}
}

func postCalculate(t *testing.T, server *httptest.Server, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/admin/pricing/calculate", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func TestCalculateReturnsPricedResult(t *testing.T) {
	server := newTestServer(cardRecords(), &stubClients{})
	defer server.Close()

	resp := postCalculate(t, server, map[string]any{"productId": 1, "quantity": 50})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.PricingResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.InDelta(t, 0.09, result.UnitPrice, 1e-9)
	assert.InDelta(t, 4.50, result.TotalPrice, 1e-9)
	assert.True(t, result.CostKnown)
}

func TestCalculateRejectsMissingQuantity(t *testing.T) {
	server := newTestServer(cardRecords(), &stubClients{})
	defer server.Close()

	resp := postCalculate(t, server, map[string]any{"productId": 1})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalculateUnknownProductIs404(t *testing.T) {
	server := newTestServer(cardRecords(), &stubClients{})
	defer server.Close()

	resp := postCalculate(t, server, map[string]any{"productId": 42, "quantity": 10})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCalculateMissingWorkStillReturnsPrices(t *testing.T) {
	server := newTestServer(cardRecords(), &stubClients{})
	defer server.Close()

	resp := postCalculate(t, server, map[string]any{
		"productId": 1,
		"quantity":  50,
		"extraWorks": []map[string]any{
			{"name": "Foil Stamping", "duration": 1},
		},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		models.PricingResult
		MissingCosts []string `json:"missingCosts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.CostKnown)
	assert.Equal(t, []string{`work "Foil Stamping"`}, result.MissingCosts)
	assert.InDelta(t, 4.50, result.TotalPrice, 1e-9)
}

func TestCalculateResolvesClientDiscount(t *testing.T) {
	clients := &stubClients{clients: map[int64]models.Client{
		7: {ID: 7, Name: "Acme Agency", DiscountRuleID: i64Ptr(2)},
	}}
	server := newTestServer(cardRecords(), clients)
	defer server.Close()

	resp := postCalculate(t, server, map[string]any{"productId": 1, "quantity": 50, "clientId": 7})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.PricingResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.InDelta(t, 4.05, result.TotalPrice, 1e-9)
}

func TestCalculateUnknownClientIs404(t *testing.T) {
	server := newTestServer(cardRecords(), &stubClients{})
	defer server.Close()

	resp := postCalculate(t, server, map[string]any{"productId": 1, "quantity": 50, "clientId": 99})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
