package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"printshop-crm/db"
	"printshop-crm/models"
)

// OrderRepository handles database operations for orders and order items.
// Every item row stores the full pricing outcome so reporting tools can read
// raw rows without re-running the engine.
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

func (r *OrderRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT id, client_id, status, notes, created_at
		FROM orders
		ORDER BY id DESC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.ClientID, &o.Status, &o.Notes, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// GetOrder returns an order with its items.
func (r *OrderRepository) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	query := `
		SELECT id, client_id, status, notes, created_at
		FROM orders
		WHERE id = $1
	`

	var o models.Order
	err := db.DB.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.ClientID, &o.Status, &o.Notes, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := touchExists(ctx, "clients", order.ClientID); err != nil {
		return err
	}

	if order.Status == "" {
		order.Status = models.OrderStatusDraft
	}

	query := `
		INSERT INTO orders (client_id, status, notes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := db.DB.QueryRowContext(ctx, query, order.ClientID, order.Status, order.Notes).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// UpdateStatus transitions an order and returns the updated record.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	switch status {
	case models.OrderStatusDraft, models.OrderStatusConfirmed, models.OrderStatusInProduction,
		models.OrderStatusShipped, models.OrderStatusDone, models.OrderStatusCancelled:
	default:
		return nil, fmt.Errorf("unknown order status %q", status)
	}

	result, err := db.DB.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %d status: %w", id, err)
	}
	if err := requireRowAffected(result, "order", id); err != nil {
		return nil, err
	}

	return r.GetOrder(ctx, id)
}

// AddItem inserts a priced item row.
func (r *OrderRepository) AddItem(ctx context.Context, item *models.OrderItem) error {
	extras, err := marshalExtras(item.ExtraWorks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO order_items
			(order_id, product_id, material_id, quantity, width_mm, height_mm,
			 lamination, extra_works, pages, manual_override,
			 unit_price, total_price, total_cost, margin_percent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`

	err = db.DB.QueryRowContext(ctx, query,
		item.OrderID, item.ProductID, item.MaterialID, item.Quantity,
		item.WidthMM, item.HeightMM, item.Lamination, extras, item.Pages, item.ManualOverride,
		item.UnitPrice, item.TotalPrice, item.TotalCost, item.MarginPercent,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order item: %w", err)
	}

	return nil
}

// UpdateItem replaces an item row with its recalculated pricing.
func (r *OrderRepository) UpdateItem(ctx context.Context, item *models.OrderItem) error {
	extras, err := marshalExtras(item.ExtraWorks)
	if err != nil {
		return err
	}

	query := `
		UPDATE order_items
		SET product_id = $1, material_id = $2, quantity = $3, width_mm = $4, height_mm = $5,
		    lamination = $6, extra_works = $7, pages = $8, manual_override = $9,
		    unit_price = $10, total_price = $11, total_cost = $12, margin_percent = $13
		WHERE id = $14 AND order_id = $15
	`

	result, err := db.DB.ExecContext(ctx, query,
		item.ProductID, item.MaterialID, item.Quantity, item.WidthMM, item.HeightMM,
		item.Lamination, extras, item.Pages, item.ManualOverride,
		item.UnitPrice, item.TotalPrice, item.TotalCost, item.MarginPercent,
		item.ID, item.OrderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order item %d: %w", item.ID, err)
	}

	return requireRowAffected(result, "order item", item.ID)
}

func (r *OrderRepository) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	result, err := db.DB.ExecContext(ctx,
		`DELETE FROM order_items WHERE id = $1 AND order_id = $2`, itemID, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order item %d: %w", itemID, err)
	}
	return requireRowAffected(result, "order item", itemID)
}

func (r *OrderRepository) GetItem(ctx context.Context, orderID, itemID int64) (*models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, material_id, quantity, width_mm, height_mm,
		       lamination, extra_works, pages, manual_override,
		       unit_price, total_price, total_cost, margin_percent, created_at
		FROM order_items
		WHERE id = $1 AND order_id = $2
	`

	item, err := scanItem(db.DB.QueryRowContext(ctx, query, itemID, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order item %d: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order item %d: %w", itemID, err)
	}

	return item, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, material_id, quantity, width_mm, height_mm,
		       lamination, extra_works, pages, manual_override,
		       unit_price, total_price, total_cost, margin_percent, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

func marshalExtras(extras []models.ExtraWorkSelection) ([]byte, error) {
	if extras == nil {
		extras = []models.ExtraWorkSelection{}
	}
	data, err := json.Marshal(extras)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extra works: %w", err)
	}
	return data, nil
}

func scanItem(s scanner) (*models.OrderItem, error) {
	var item models.OrderItem
	var extras []byte
	err := s.Scan(
		&item.ID, &item.OrderID, &item.ProductID, &item.MaterialID, &item.Quantity,
		&item.WidthMM, &item.HeightMM, &item.Lamination, &extras, &item.Pages,
		&item.ManualOverride, &item.UnitPrice, &item.TotalPrice, &item.TotalCost,
		&item.MarginPercent, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(extras) > 0 {
		if err := json.Unmarshal(extras, &item.ExtraWorks); err != nil {
			return nil, fmt.Errorf("failed to unmarshal extra works: %w", err)
		}
	}
	return &item, nil
}
