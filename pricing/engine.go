package pricing

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"printshop-crm/models"
	"printshop-crm/repository"
)

// Repository is the read-only record access the engine needs. Implementations
// must not be mutated by the engine; every calculation loads a fresh snapshot
// through it.
type Repository interface {
	ListActiveRules(ctx context.Context) ([]models.CalculationRule, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	GetMaterial(ctx context.Context, id int64) (*models.Material, error)
	GetWorkByName(ctx context.Context, name string) (*models.Work, error)
}

// Engine is the pricing facade: the single entry point all call sites (order
// item editor, quoting tool, rule management preview) agree on. It is
// stateless per call; concurrent calculations are fully independent.
type Engine struct {
	repo   Repository
	logger *zap.Logger
}

// NewEngine creates a pricing engine over the given repository.
func NewEngine(repo Repository, logger *zap.Logger) *Engine {
	return &Engine{repo: repo, logger: logger}
}

// CalculatePrice orchestrates matching, composing and cost calculation and
// returns the complete result plus the applied-rules audit trail. Given an
// unchanged repository snapshot and an identical request it returns identical
// output.
//
// Error contract: input errors reject the request (ErrQuantityRequired);
// failures loading the product or rule set fail the calculation; a material
// or work that cannot be resolved yields a partial result with valid prices
// and a *CostError.
func (e *Engine) CalculatePrice(ctx context.Context, req *models.PricingRequest) (*models.PricingResult, error) {
	if req == nil || req.Quantity < 1 {
		return nil, ErrQuantityRequired
	}

	snap, missing, err := e.loadSnapshot(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &models.PricingResult{
		CostKnown:    true,
		Breakdown:    []models.BreakdownLine{},
		AppliedRules: []string{},
	}

	if req.Manual != nil {
		// Manual override: the caller owns both prices, no rule evaluation
		// runs. Cost and margin are still computed against the overridden
		// total.
		result.UnitPrice = req.Manual.UnitPrice
		result.TotalPrice = req.Manual.TotalPrice
	} else {
		matched := MatchRules(snap.Rules, req)
		composed := ComposePrice(matched, snap.Product, req)
		result.UnitPrice = composed.UnitPrice
		result.TotalPrice = composed.TotalPrice
		result.AppliedRules = composed.AppliedRules
		result.Breakdown = append(result.Breakdown, composed.Lines...)
	}

	if len(missing) > 0 {
		result.CostKnown = false
		e.logger.Warn("cost unavailable for pricing request",
			zap.Int64("productId", req.ProductID),
			zap.Strings("missing", missing))
		return result, &CostError{Missing: missing}
	}

	cost := CalculateCost(snap, req)
	result.TotalCost = cost.TotalCost
	result.MarginPercent = MarginPercent(result.TotalPrice, cost.TotalCost)
	result.Breakdown = append(result.Breakdown, cost.Lines...)

	e.logger.Debug("price calculated",
		zap.Int64("productId", req.ProductID),
		zap.Int("quantity", req.Quantity),
		zap.Float64("totalPrice", result.TotalPrice),
		zap.Float64("marginPercent", result.MarginPercent),
		zap.Strings("appliedRules", result.AppliedRules))

	return result, nil
}

// loadSnapshot awaits every repository read the calculation needs before any
// computing happens. Product and rule set failures abort; missing materials
// or works are collected so the cost side can be reported as unknown.
func (e *Engine) loadSnapshot(ctx context.Context, req *models.PricingRequest) (*Snapshot, []string, error) {
	snap := &Snapshot{Works: make(map[string]models.Work)}
	var missing []string

	if req.Manual == nil {
		product, err := e.repo.GetProduct(ctx, req.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("load product %d: %w", req.ProductID, err)
		}
		rules, err := e.repo.ListActiveRules(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load active rules: %w", err)
		}
		snap.Product = product
		snap.Rules = rules
	}

	if req.MaterialID != nil {
		material, err := e.repo.GetMaterial(ctx, *req.MaterialID)
		switch {
		case err == nil:
			snap.Material = material
		case errors.Is(err, repository.ErrNotFound):
			missing = append(missing, fmt.Sprintf("material %d", *req.MaterialID))
		default:
			return nil, nil, fmt.Errorf("load material %d: %w", *req.MaterialID, err)
		}
	}

	seen := make(map[string]bool)
	for _, sel := range req.ExtraWorks {
		if seen[sel.Name] {
			continue
		}
		seen[sel.Name] = true
		work, err := e.repo.GetWorkByName(ctx, sel.Name)
		switch {
		case err == nil:
			snap.Works[sel.Name] = *work
		case errors.Is(err, repository.ErrNotFound):
			missing = append(missing, fmt.Sprintf("work %q", sel.Name))
		default:
			return nil, nil, fmt.Errorf("load work %q: %w", sel.Name, err)
		}
	}

	return snap, missing, nil
}
