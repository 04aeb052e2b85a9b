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
	"printshop-crm/service"
)

// OrderController handles HTTP requests for orders and their priced items.
// Every item mutation goes through the pricing engine so persisted prices can
// never drift from the rules that produced them, except for manual overrides.
type OrderController struct {
	orders   repository.OrderRepositoryInterface
	clients  repository.ClientRepositoryInterface
	records  repository.PricingRepositoryInterface
	engine   *pricing.Engine
	webhooks *service.WebhookService
	logger   *zap.Logger
}

// NewOrderController creates a new OrderController.
func NewOrderController(
	orders repository.OrderRepositoryInterface,
	clients repository.ClientRepositoryInterface,
	records repository.PricingRepositoryInterface,
	engine *pricing.Engine,
	webhooks *service.WebhookService,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{
		orders:   orders,
		clients:  clients,
		records:  records,
		engine:   engine,
		webhooks: webhooks,
		logger:   logger,
	}
}

// List handles GET /admin/orders.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.ListOrders(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /admin/orders/{id}.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := c.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Create handles POST /admin/orders.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.ClientID <= 0 {
		writeError(w, http.StatusBadRequest, "clientId is required")
		return
	}
	if _, err := c.clients.Get(r.Context(), req.ClientID); err != nil {
		writeRepoError(w, err)
		return
	}

	order := &models.Order{
		ClientID: req.ClientID,
		Status:   models.OrderStatusDraft,
		Notes:    req.Notes,
	}
	if err := c.orders.CreateOrder(r.Context(), order); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles POST /admin/orders/{id}/status. A successful change is
// broadcast to the configured webhook endpoints without blocking the response.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	order, err := c.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	go c.webhooks.NotifyStatusChange(context.Background(), order)

	writeJSON(w, http.StatusOK, order)
}

// AddItem handles POST /admin/orders/{id}/items.
func (c *OrderController) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req models.OrderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	order, err := c.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	item, ok := c.priceItem(w, r, order, &req)
	if !ok {
		return
	}
	item.OrderID = orderID

	if err := c.orders.AddItem(r.Context(), item); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /admin/orders/{id}/items/{itemId}. The item is
// repriced against the current rule set.
func (c *OrderController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	itemID, err := idParam(r, "itemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req models.OrderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	order, err := c.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if _, err := c.orders.GetItem(r.Context(), orderID, itemID); err != nil {
		writeRepoError(w, err)
		return
	}

	item, ok := c.priceItem(w, r, order, &req)
	if !ok {
		return
	}
	item.ID = itemID
	item.OrderID = orderID

	if err := c.orders.UpdateItem(r.Context(), item); err != nil {
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// RemoveItem handles DELETE /admin/orders/{id}/items/{itemId}.
func (c *OrderController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	itemID, err := idParam(r, "itemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := c.orders.RemoveItem(r.Context(), orderID, itemID); err != nil {
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// priceItem runs one item request through the engine and returns the priced
// item. On failure it writes the error response and returns ok=false. An
// unresolvable cost input is not a failure: the item is stored with the
// calculated prices and zero cost.
func (c *OrderController) priceItem(
	w http.ResponseWriter,
	r *http.Request,
	order *models.Order,
	req *models.OrderItemRequest,
) (*models.OrderItem, bool) {
	preq := &models.PricingRequest{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		MaterialID: req.MaterialID,
		WidthMM:    req.WidthMM,
		HeightMM:   req.HeightMM,
		Lamination: req.Lamination,
		ExtraWorks: req.ExtraWorks,
		Pages:      req.Pages,
	}

	manual := req.ManualUnitPrice != nil && req.ManualTotalPrice != nil
	if manual {
		preq.Manual = &models.ManualPrice{
			UnitPrice:  *req.ManualUnitPrice,
			TotalPrice: *req.ManualTotalPrice,
		}
	}

	discount, err := ResolveClientDiscount(r.Context(), c.clients, c.records, order.ClientID)
	if err != nil {
		writeRepoError(w, err)
		return nil, false
	}
	preq.ClientDiscount = discount

	result, err := c.engine.CalculatePrice(r.Context(), preq)
	if err != nil {
		var costErr *pricing.CostError
		switch {
		case errors.Is(err, pricing.ErrQuantityRequired):
			writeError(w, http.StatusBadRequest, err.Error())
			return nil, false
		case errors.As(err, &costErr):
			c.logger.Warn("order item priced with unknown cost",
				zap.Int64("orderId", order.ID),
				zap.Strings("missing", costErr.Missing))
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
			return nil, false
		default:
			c.logger.Error("order item pricing failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return nil, false
		}
	}

	return &models.OrderItem{
		ProductID:      req.ProductID,
		MaterialID:     req.MaterialID,
		Quantity:       req.Quantity,
		WidthMM:        req.WidthMM,
		HeightMM:       req.HeightMM,
		Lamination:     req.Lamination,
		ExtraWorks:     req.ExtraWorks,
		Pages:          req.Pages,
		ManualOverride: manual,
		UnitPrice:      result.UnitPrice,
		TotalPrice:     result.TotalPrice,
		TotalCost:      result.TotalCost,
		MarginPercent:  result.MarginPercent,
	}, true
}
