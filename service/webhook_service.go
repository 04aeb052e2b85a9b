package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"printshop-crm/models"
	"printshop-crm/repository"
)

// WebhookService notifies configured endpoints about order status changes.
// Delivery is fire-and-forget: failures are logged and not retried, a broken
// chat integration must never block order handling.
type WebhookService struct {
	webhooks repository.WebhookRepositoryInterface
	client   *http.Client
	logger   *zap.Logger
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(webhooks repository.WebhookRepositoryInterface, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		webhooks: webhooks,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// NotifyStatusChange posts an order.status_changed event to every active
// endpoint. Each delivery gets its own event ID.
func (s *WebhookService) NotifyStatusChange(ctx context.Context, order *models.Order) {
	endpoints, err := s.webhooks.ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to load webhook endpoints", zap.Error(err))
		return
	}

	for _, endpoint := range endpoints {
		event := models.WebhookEvent{
			EventID:    uuid.NewString(),
			Event:      "order.status_changed",
			OrderID:    order.ID,
			Status:     order.Status,
			ClientID:   order.ClientID,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		}

		if err := s.deliver(ctx, endpoint.URL, &event); err != nil {
			s.logger.Warn("webhook delivery failed",
				zap.String("url", endpoint.URL),
				zap.String("kind", endpoint.Kind),
				zap.Int64("orderId", order.ID),
				zap.Error(err))
			continue
		}

		s.logger.Debug("webhook delivered",
			zap.String("kind", endpoint.Kind),
			zap.Int64("orderId", order.ID),
			zap.String("status", order.Status))
	}
}

func (s *WebhookService) deliver(ctx context.Context, url string, event *models.WebhookEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
