package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"printshop-crm/models"
	"printshop-crm/pricing"
	"printshop-crm/repository"
)

// PricingController exposes ad-hoc price calculations for the order editor's
// live preview.
type PricingController struct {
	engine  *pricing.Engine
	records repository.PricingRepositoryInterface
	clients repository.ClientRepositoryInterface
	logger  *zap.Logger
}

// NewPricingController creates a new PricingController.
func NewPricingController(
	engine *pricing.Engine,
	records repository.PricingRepositoryInterface,
	clients repository.ClientRepositoryInterface,
	logger *zap.Logger,
) *PricingController {
	return &PricingController{
		engine:  engine,
		records: records,
		clients: clients,
		logger:  logger,
	}
}

// CalculateRequest is a PricingRequest plus an optional client reference; the
// controller resolves the client's discount rule before calling the engine.
type CalculateRequest struct {
	models.PricingRequest
	ClientID *int64 `json:"clientId,omitempty"`
}

// calculateResponse surfaces unresolved cost inputs next to the (still valid)
// prices.
type calculateResponse struct {
	*models.PricingResult
	MissingCosts []string `json:"missingCosts,omitempty"`
}

// Calculate handles POST /admin/pricing/calculate.
func (c *PricingController) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.ClientID != nil {
		discount, err := ResolveClientDiscount(r.Context(), c.clients, c.records, *req.ClientID)
		if err != nil {
			writeRepoError(w, err)
			return
		}
		req.ClientDiscount = discount
	}

	result, err := c.engine.CalculatePrice(r.Context(), &req.PricingRequest)
	if err != nil {
		var costErr *pricing.CostError
		switch {
		case errors.Is(err, pricing.ErrQuantityRequired):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case errors.As(err, &costErr):
			// Prices are valid, only the cost side is incomplete.
			writeJSON(w, http.StatusOK, calculateResponse{
				PricingResult: result,
				MissingCosts:  costErr.Missing,
			})
			return
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
			return
		default:
			c.logger.Error("price calculation failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, calculateResponse{PricingResult: result})
}

// ResolveClientDiscount loads a client's discount rule, if any. Inactive or
// wrongly-typed rules resolve to nil rather than an error; a stale pointer on
// a client record must not break pricing.
func ResolveClientDiscount(
	ctx context.Context,
	clients repository.ClientRepositoryInterface,
	records repository.PricingRepositoryInterface,
	clientID int64,
) (*models.CalculationRule, error) {
	client, err := clients.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.DiscountRuleID == nil {
		return nil, nil
	}

	rule, err := records.GetRule(ctx, *client.DiscountRuleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !rule.IsActive || rule.RuleType != models.RuleClientDiscountMultiplier {
		return nil, nil
	}
	return rule, nil
}
