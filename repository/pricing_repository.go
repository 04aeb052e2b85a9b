package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"printshop-crm/db"
	"printshop-crm/models"
)

// PricingRepository serves the read-only record access the pricing engine
// needs. All queries hit the shared connection pool; nothing is cached so
// every calculation sees a fresh snapshot.
type PricingRepository struct{}

// NewPricingRepository creates a new PricingRepository.
func NewPricingRepository() *PricingRepository {
	return &PricingRepository{}
}

// Ensure PricingRepository implements PricingRepositoryInterface
var _ PricingRepositoryInterface = (*PricingRepository)(nil)

// ListActiveRules returns all active calculation rules, ordered so matching
// is deterministic regardless of insertion order.
func (r *PricingRepository) ListActiveRules(ctx context.Context) ([]models.CalculationRule, error) {
	query := `
		SELECT id, rule_type, name, value, priority, is_active,
		       product_id, lamination, extra_name, min_quantity, max_quantity
		FROM calculation_rules
		WHERE is_active = true
		ORDER BY priority DESC, id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active rules: %w", err)
	}
	defer rows.Close()

	var rules []models.CalculationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, *rule)
	}

	return rules, rows.Err()
}

// GetProduct returns a product with its default works joined in order.
func (r *PricingRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT id, name, category, base_price, created_at
		FROM products
		WHERE id = $1
	`

	var product models.Product
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.BasePrice,
		&product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}

	works, err := r.ListDefaultWorks(ctx, id)
	if err != nil {
		return nil, err
	}
	product.DefaultWorks = works

	return &product, nil
}

// GetMaterial returns a material by id.
func (r *PricingRepository) GetMaterial(ctx context.Context, id int64) (*models.Material, error) {
	query := `
		SELECT id, name, unit_price, unit, stock_level
		FROM materials
		WHERE id = $1
	`

	var material models.Material
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&material.ID,
		&material.Name,
		&material.UnitPrice,
		&material.Unit,
		&material.StockLevel,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("material %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get material %d: %w", id, err)
	}

	return &material, nil
}

// GetWorkByName resolves a work record by its operation name. Extra work
// selections reference works by name, not id.
func (r *PricingRepository) GetWorkByName(ctx context.Context, name string) (*models.Work, error) {
	query := `
		SELECT id, name, price_per_unit, cost_per_unit, unit
		FROM works
		WHERE name = $1
	`

	var work models.Work
	err := db.DB.QueryRowContext(ctx, query, name).Scan(
		&work.ID,
		&work.Name,
		&work.PricePerUnit,
		&work.CostPerUnit,
		&work.Unit,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get work %q: %w", name, err)
	}

	return &work, nil
}

// ListDefaultWorks returns the ordered default works of a product.
func (r *PricingRepository) ListDefaultWorks(ctx context.Context, productID int64) ([]models.ProductWork, error) {
	query := `
		SELECT pw.work_id, w.name, pw.default_quantity
		FROM product_works pw
		INNER JOIN works w ON w.id = pw.work_id
		WHERE pw.product_id = $1
		ORDER BY pw.position ASC, pw.work_id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list default works for product %d: %w", productID, err)
	}
	defer rows.Close()

	var works []models.ProductWork
	for rows.Next() {
		var pw models.ProductWork
		if err := rows.Scan(&pw.WorkID, &pw.WorkName, &pw.DefaultQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan default work: %w", err)
		}
		works = append(works, pw)
	}

	return works, rows.Err()
}

// GetRule returns a single calculation rule by id. Used by the order editor
// to resolve a client's discount rule.
func (r *PricingRepository) GetRule(ctx context.Context, id int64) (*models.CalculationRule, error) {
	query := `
		SELECT id, rule_type, name, value, priority, is_active,
		       product_id, lamination, extra_name, min_quantity, max_quantity
		FROM calculation_rules
		WHERE id = $1
	`

	row := db.DB.QueryRowContext(ctx, query, id)
	rule, err := scanRule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rule %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rule %d: %w", id, err)
	}

	return rule, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRule(s scanner) (*models.CalculationRule, error) {
	var rule models.CalculationRule
	err := s.Scan(
		&rule.ID,
		&rule.RuleType,
		&rule.Name,
		&rule.Value,
		&rule.Priority,
		&rule.IsActive,
		&rule.ProductID,
		&rule.Lamination,
		&rule.ExtraName,
		&rule.MinQuantity,
		&rule.MaxQuantity,
	)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
