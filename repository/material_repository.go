package repository

import (
	"context"
	"fmt"

	"printshop-crm/db"
	"printshop-crm/models"
)

// MaterialRepository handles database operations for materials.
type MaterialRepository struct{}

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository() *MaterialRepository {
	return &MaterialRepository{}
}

// Ensure MaterialRepository implements MaterialRepositoryInterface
var _ MaterialRepositoryInterface = (*MaterialRepository)(nil)

func validMaterialUnit(u models.MeasureUnit) bool {
	switch u {
	case models.UnitPiece, models.UnitArea, models.UnitWeight, models.UnitVolume, models.UnitLength:
		return true
	}
	return false
}

func (r *MaterialRepository) List(ctx context.Context) ([]models.Material, error) {
	query := `
		SELECT id, name, unit_price, unit, stock_level
		FROM materials
		ORDER BY name ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()

	var materials []models.Material
	for rows.Next() {
		var m models.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.UnitPrice, &m.Unit, &m.StockLevel); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}

	return materials, rows.Err()
}

func (r *MaterialRepository) Get(ctx context.Context, id int64) (*models.Material, error) {
	return NewPricingRepository().GetMaterial(ctx, id)
}

func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	if material.Name == "" {
		return fmt.Errorf("material name is required")
	}
	if !validMaterialUnit(material.Unit) {
		return fmt.Errorf("unknown unit of measure %q", material.Unit)
	}

	query := `
		INSERT INTO materials (name, unit_price, unit, stock_level)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := db.DB.QueryRowContext(ctx, query,
		material.Name, material.UnitPrice, material.Unit, material.StockLevel,
	).Scan(&material.ID)
	if err != nil {
		return fmt.Errorf("failed to insert material: %w", err)
	}

	return nil
}

func (r *MaterialRepository) Update(ctx context.Context, material *models.Material) error {
	if material.Name == "" {
		return fmt.Errorf("material name is required")
	}
	if !validMaterialUnit(material.Unit) {
		return fmt.Errorf("unknown unit of measure %q", material.Unit)
	}

	query := `
		UPDATE materials
		SET name = $1, unit_price = $2, unit = $3, stock_level = $4
		WHERE id = $5
	`

	result, err := db.DB.ExecContext(ctx, query,
		material.Name, material.UnitPrice, material.Unit, material.StockLevel, material.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update material %d: %w", material.ID, err)
	}

	return requireRowAffected(result, "material", material.ID)
}

func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete material %d: %w", id, err)
	}
	return requireRowAffected(result, "material", id)
}
