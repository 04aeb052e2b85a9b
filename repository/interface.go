package repository

import (
	"context"

	"printshop-crm/models"
)

// PricingRepositoryInterface is the read-only record access the pricing
// engine and its call sites use. Implementations never mutate records on
// behalf of the engine.
type PricingRepositoryInterface interface {
	ListActiveRules(ctx context.Context) ([]models.CalculationRule, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	GetMaterial(ctx context.Context, id int64) (*models.Material, error)
	GetWorkByName(ctx context.Context, name string) (*models.Work, error)
	ListDefaultWorks(ctx context.Context, productID int64) ([]models.ProductWork, error)
	GetRule(ctx context.Context, id int64) (*models.CalculationRule, error)
}

// RuleRepositoryInterface defines CRUD for calculation rules.
type RuleRepositoryInterface interface {
	List(ctx context.Context) ([]models.CalculationRule, error)
	Get(ctx context.Context, id int64) (*models.CalculationRule, error)
	Create(ctx context.Context, rule *models.CalculationRule) error
	Update(ctx context.Context, rule *models.CalculationRule) error
	Delete(ctx context.Context, id int64) error
}

// ClientRepositoryInterface defines CRUD for clients.
type ClientRepositoryInterface interface {
	List(ctx context.Context) ([]models.Client, error)
	Get(ctx context.Context, id int64) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepositoryInterface defines CRUD for products and their default
// works.
type ProductRepositoryInterface interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
}

// MaterialRepositoryInterface defines CRUD for materials.
type MaterialRepositoryInterface interface {
	List(ctx context.Context) ([]models.Material, error)
	Get(ctx context.Context, id int64) (*models.Material, error)
	Create(ctx context.Context, material *models.Material) error
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id int64) error
}

// WorkRepositoryInterface defines CRUD for works.
type WorkRepositoryInterface interface {
	List(ctx context.Context) ([]models.Work, error)
	Get(ctx context.Context, id int64) (*models.Work, error)
	Create(ctx context.Context, work *models.Work) error
	Update(ctx context.Context, work *models.Work) error
	Delete(ctx context.Context, id int64) error
}

// OrderRepositoryInterface defines order and order item persistence.
type OrderRepositoryInterface interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error)
	AddItem(ctx context.Context, item *models.OrderItem) error
	UpdateItem(ctx context.Context, item *models.OrderItem) error
	RemoveItem(ctx context.Context, orderID, itemID int64) error
	GetItem(ctx context.Context, orderID, itemID int64) (*models.OrderItem, error)
}

// AttachmentRepositoryInterface defines order attachment metadata
// persistence. The bytes themselves live in Drive.
type AttachmentRepositoryInterface interface {
	ListByOrder(ctx context.Context, orderID int64) ([]models.OrderAttachment, error)
	Get(ctx context.Context, id int64) (*models.OrderAttachment, error)
	Insert(ctx context.Context, attachment *models.OrderAttachment) error
}

// WebhookRepositoryInterface defines webhook endpoint configuration access.
type WebhookRepositoryInterface interface {
	ListActive(ctx context.Context) ([]models.WebhookEndpoint, error)
	Create(ctx context.Context, endpoint *models.WebhookEndpoint) error
	Delete(ctx context.Context, id int64) error
}
