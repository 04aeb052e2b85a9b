package repository

import (
	"context"
	"fmt"

	"printshop-crm/db"
	"printshop-crm/models"
)

// WebhookRepository handles outbound webhook endpoint configuration.
type WebhookRepository struct{}

// NewWebhookRepository creates a new WebhookRepository.
func NewWebhookRepository() *WebhookRepository {
	return &WebhookRepository{}
}

// Ensure WebhookRepository implements WebhookRepositoryInterface
var _ WebhookRepositoryInterface = (*WebhookRepository)(nil)

func (r *WebhookRepository) ListActive(ctx context.Context) ([]models.WebhookEndpoint, error) {
	query := `
		SELECT id, kind, url, is_active
		FROM webhook_endpoints
		WHERE is_active = true
		ORDER BY id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook endpoints: %w", err)
	}
	defer rows.Close()

	var endpoints []models.WebhookEndpoint
	for rows.Next() {
		var e models.WebhookEndpoint
		if err := rows.Scan(&e.ID, &e.Kind, &e.URL, &e.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan webhook endpoint: %w", err)
		}
		endpoints = append(endpoints, e)
	}

	return endpoints, rows.Err()
}

func (r *WebhookRepository) Create(ctx context.Context, endpoint *models.WebhookEndpoint) error {
	if endpoint.URL == "" {
		return fmt.Errorf("webhook url is required")
	}
	if endpoint.Kind == "" {
		return fmt.Errorf("webhook kind is required")
	}

	query := `
		INSERT INTO webhook_endpoints (kind, url, is_active)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := db.DB.QueryRowContext(ctx, query, endpoint.Kind, endpoint.URL, endpoint.IsActive).
		Scan(&endpoint.ID)
	if err != nil {
		return fmt.Errorf("failed to insert webhook endpoint: %w", err)
	}

	return nil
}

func (r *WebhookRepository) Delete(ctx context.Context, id int64) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM webhook_endpoints WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete webhook endpoint %d: %w", id, err)
	}
	return requireRowAffected(result, "webhook endpoint", id)
}
