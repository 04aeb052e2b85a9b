package models

// Order statuses. Status changes trigger outbound webhook notifications.
const (
	OrderStatusDraft        = "draft"
	OrderStatusConfirmed    = "confirmed"
	OrderStatusInProduction = "in_production"
	OrderStatusShipped      = "shipped"
	OrderStatusDone         = "done"
	OrderStatusCancelled    = "cancelled"
)

// Order represents a customer order.
type Order struct {
	ID        int64       `json:"id"`
	ClientID  int64       `json:"clientId"`
	Status    string      `json:"status"`
	Notes     string      `json:"notes,omitempty"`
	Items     []OrderItem `json:"items,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty"`
}

// OrderItem is one priced line of an order. The full pricing outcome is
// persisted on the row so batch reports can read raw rows without going
// through the engine again.
type OrderItem struct {
	ID             int64                `json:"id"`
	OrderID        int64                `json:"orderId"`
	ProductID      int64                `json:"productId"`
	MaterialID     *int64               `json:"materialId,omitempty"`
	Quantity       int                  `json:"quantity"`
	WidthMM        *float64             `json:"widthMm,omitempty"`
	HeightMM       *float64             `json:"heightMm,omitempty"`
	Lamination     *string              `json:"lamination,omitempty"`
	ExtraWorks     []ExtraWorkSelection `json:"extraWorks,omitempty"`
	Pages          *int                 `json:"pages,omitempty"`
	ManualOverride bool                 `json:"manualOverride"`
	UnitPrice      float64              `json:"unitPrice"`
	TotalPrice     float64              `json:"totalPrice"`
	TotalCost      float64              `json:"totalCost"`
	MarginPercent  float64              `json:"marginPercent"`
	CreatedAt      string               `json:"createdAt,omitempty"`
}

// CreateOrderRequest is the request body for creating an order.
type CreateOrderRequest struct {
	ClientID int64  `json:"clientId"`
	Notes    string `json:"notes,omitempty"`
}

// OrderItemRequest is the request body for adding or updating an order item.
// When ManualUnitPrice/ManualTotalPrice are set the item is manually priced
// and rule evaluation is skipped.
type OrderItemRequest struct {
	ProductID        int64                `json:"productId"`
	Quantity         int                  `json:"quantity"`
	MaterialID       *int64               `json:"materialId,omitempty"`
	WidthMM          *float64             `json:"widthMm,omitempty"`
	HeightMM         *float64             `json:"heightMm,omitempty"`
	Lamination       *string              `json:"lamination,omitempty"`
	ExtraWorks       []ExtraWorkSelection `json:"extraWorks,omitempty"`
	Pages            *int                 `json:"pages,omitempty"`
	ManualUnitPrice  *float64             `json:"manualUnitPrice,omitempty"`
	ManualTotalPrice *float64             `json:"manualTotalPrice,omitempty"`
}

// OrderAttachment is an artwork file stored in Drive for an order.
type OrderAttachment struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"orderId"`
	FileName    string `json:"fileName"`
	MimeType    string `json:"mimeType"`
	DriveFileID string `json:"driveFileId"`
	SizeBytes   int64  `json:"sizeBytes"`
	CreatedAt   string `json:"createdAt,omitempty"`
}
