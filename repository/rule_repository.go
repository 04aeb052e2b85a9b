package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"printshop-crm/db"
	"printshop-crm/models"
)

// RuleRepository handles CRUD for calculation rules. Per-variant required
// fields are enforced here, at persist time, so matching never has to deal
// with half-formed rules.
type RuleRepository struct{}

// NewRuleRepository creates a new RuleRepository.
func NewRuleRepository() *RuleRepository {
	return &RuleRepository{}
}

// Ensure RuleRepository implements RuleRepositoryInterface
var _ RuleRepositoryInterface = (*RuleRepository)(nil)

// List returns all rules, active and inactive, for the management UI.
func (r *RuleRepository) List(ctx context.Context) ([]models.CalculationRule, error) {
	query := `
		SELECT id, rule_type, name, value, priority, is_active,
		       product_id, lamination, extra_name, min_quantity, max_quantity
		FROM calculation_rules
		ORDER BY priority DESC, id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
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

// Get returns a rule by id.
func (r *RuleRepository) Get(ctx context.Context, id int64) (*models.CalculationRule, error) {
	return NewPricingRepository().GetRule(ctx, id)
}

// Create validates and inserts a rule, filling in the generated id.
func (r *RuleRepository) Create(ctx context.Context, rule *models.CalculationRule) error {
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}

	query := `
		INSERT INTO calculation_rules
			(rule_type, name, value, priority, is_active,
			 product_id, lamination, extra_name, min_quantity, max_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := db.DB.QueryRowContext(ctx, query,
		rule.RuleType, rule.Name, rule.Value, rule.Priority, rule.IsActive,
		rule.ProductID, rule.Lamination, rule.ExtraName, rule.MinQuantity, rule.MaxQuantity,
	).Scan(&rule.ID)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}

	return nil
}

// Update validates and updates a rule.
func (r *RuleRepository) Update(ctx context.Context, rule *models.CalculationRule) error {
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("invalid rule: %w", err)
	}

	query := `
		UPDATE calculation_rules
		SET rule_type = $1, name = $2, value = $3, priority = $4, is_active = $5,
		    product_id = $6, lamination = $7, extra_name = $8,
		    min_quantity = $9, max_quantity = $10
		WHERE id = $11
	`

	result, err := db.DB.ExecContext(ctx, query,
		rule.RuleType, rule.Name, rule.Value, rule.Priority, rule.IsActive,
		rule.ProductID, rule.Lamination, rule.ExtraName, rule.MinQuantity, rule.MaxQuantity,
		rule.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rule %d: %w", rule.ID, err)
	}

	return requireRowAffected(result, "rule", rule.ID)
}

// Delete removes a rule.
func (r *RuleRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM calculation_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule %d: %w", id, err)
	}
	return requireRowAffected(result, "rule", id)
}

// requireRowAffected maps a zero-row write to ErrNotFound.
func requireRowAffected(result sql.Result, kind string, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}

// touchExists is a shared existence probe used by repositories that need a
// foreign record check before writing.
func touchExists(ctx context.Context, table string, id int64) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE id = $1`, table)
	var one int
	if err := db.DB.QueryRowContext(ctx, query, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %d: %w", table, id, ErrNotFound)
		}
		return fmt.Errorf("failed to check %s %d: %w", table, id, err)
	}
	return nil
}
