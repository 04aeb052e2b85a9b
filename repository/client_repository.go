package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"printshop-crm/db"
	"printshop-crm/models"
)

// ClientRepository handles database operations for clients.
type ClientRepository struct{}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

// Ensure ClientRepository implements ClientRepositoryInterface
var _ ClientRepositoryInterface = (*ClientRepository)(nil)

func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	query := `
		SELECT id, name, company, email, phone, discount_rule_id, created_at
		FROM clients
		ORDER BY name ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.DiscountRuleID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (r *ClientRepository) Get(ctx context.Context, id int64) (*models.Client, error) {
	query := `
		SELECT id, name, company, email, phone, discount_rule_id, created_at
		FROM clients
		WHERE id = $1
	`

	var c models.Client
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.DiscountRuleID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client %d: %w", id, err)
	}

	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	if client.Name == "" {
		return fmt.Errorf("client name is required")
	}
	if client.DiscountRuleID != nil {
		if err := touchExists(ctx, "calculation_rules", *client.DiscountRuleID); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO clients (name, company, email, phone, discount_rule_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := db.DB.QueryRowContext(ctx, query,
		client.Name, client.Company, client.Email, client.Phone, client.DiscountRuleID,
	).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}

	return nil
}

func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	if client.Name == "" {
		return fmt.Errorf("client name is required")
	}

	query := `
		UPDATE clients
		SET name = $1, company = $2, email = $3, phone = $4, discount_rule_id = $5
		WHERE id = $6
	`

	result, err := db.DB.ExecContext(ctx, query,
		client.Name, client.Company, client.Email, client.Phone, client.DiscountRuleID, client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %d: %w", client.ID, err)
	}

	return requireRowAffected(result, "client", client.ID)
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	return requireRowAffected(result, "client", id)
}
