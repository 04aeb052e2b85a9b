package repository

import (
	"context"
	"fmt"

	"printshop-crm/db"
	"printshop-crm/models"
)

// ProductRepository handles database operations for products and their
// default works.
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, category, base_price, created_at
		FROM products
		ORDER BY name ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.BasePrice, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*models.Product, error) {
	return NewPricingRepository().GetProduct(ctx, id)
}

// Create inserts a product and its default work joins in one transaction.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (name, category, base_price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, query,
		product.Name, product.Category, product.BasePrice,
	).Scan(&product.ID, &product.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	for i, pw := range product.DefaultWorks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_works (product_id, work_id, default_quantity, position)
			VALUES ($1, $2, $3, $4)
		`, product.ID, pw.WorkID, pw.DefaultQuantity, i); err != nil {
			return fmt.Errorf("failed to insert product work %d: %w", pw.WorkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product: %w", err)
	}

	return nil
}

// Update replaces the product row and its default work joins.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name is required")
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = $1, category = $2, base_price = $3
		WHERE id = $4
	`, product.Name, product.Category, product.BasePrice, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	if err := requireRowAffected(result, "product", product.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_works WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("failed to clear product works: %w", err)
	}
	for i, pw := range product.DefaultWorks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_works (product_id, work_id, default_quantity, position)
			VALUES ($1, $2, $3, $4)
		`, product.ID, pw.WorkID, pw.DefaultQuantity, i); err != nil {
			return fmt.Errorf("failed to insert product work %d: %w", pw.WorkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product update: %w", err)
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return requireRowAffected(result, "product", id)
}
