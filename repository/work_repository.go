package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"printshop-crm/db"
	"printshop-crm/models"
)

// WorkRepository handles database operations for works (operations).
type WorkRepository struct{}

// NewWorkRepository creates a new WorkRepository.
func NewWorkRepository() *WorkRepository {
	return &WorkRepository{}
}

// Ensure WorkRepository implements WorkRepositoryInterface
var _ WorkRepositoryInterface = (*WorkRepository)(nil)

func (r *WorkRepository) List(ctx context.Context) ([]models.Work, error) {
	query := `
		SELECT id, name, price_per_unit, cost_per_unit, unit
		FROM works
		ORDER BY name ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list works: %w", err)
	}
	defer rows.Close()

	var works []models.Work
	for rows.Next() {
		var w models.Work
		if err := rows.Scan(&w.ID, &w.Name, &w.PricePerUnit, &w.CostPerUnit, &w.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan work: %w", err)
		}
		works = append(works, w)
	}

	return works, rows.Err()
}

func (r *WorkRepository) Get(ctx context.Context, id int64) (*models.Work, error) {
	query := `
		SELECT id, name, price_per_unit, cost_per_unit, unit
		FROM works
		WHERE id = $1
	`

	var w models.Work
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.Name, &w.PricePerUnit, &w.CostPerUnit, &w.Unit,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get work %d: %w", id, err)
	}

	return &w, nil
}

func (r *WorkRepository) Create(ctx context.Context, work *models.Work) error {
	if work.Name == "" {
		return fmt.Errorf("work name is required")
	}
	if !validMaterialUnit(work.Unit) {
		return fmt.Errorf("unknown unit of measure %q", work.Unit)
	}

	query := `
		INSERT INTO works (name, price_per_unit, cost_per_unit, unit)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := db.DB.QueryRowContext(ctx, query,
		work.Name, work.PricePerUnit, work.CostPerUnit, work.Unit,
	).Scan(&work.ID)
	if err != nil {
		return fmt.Errorf("failed to insert work: %w", err)
	}

	return nil
}

func (r *WorkRepository) Update(ctx context.Context, work *models.Work) error {
	if work.Name == "" {
		return fmt.Errorf("work name is required")
	}
	if !validMaterialUnit(work.Unit) {
		return fmt.Errorf("unknown unit of measure %q", work.Unit)
	}

	query := `
		UPDATE works
		SET name = $1, price_per_unit = $2, cost_per_unit = $3, unit = $4
		WHERE id = $5
	`

	result, err := db.DB.ExecContext(ctx, query,
		work.Name, work.PricePerUnit, work.CostPerUnit, work.Unit, work.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update work %d: %w", work.ID, err)
	}

	return requireRowAffected(result, "work", work.ID)
}

func (r *WorkRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM works WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work %d: %w", id, err)
	}
	return requireRowAffected(result, "work", id)
}
