package models

// WebhookEndpoint is a configured outbound notification target, e.g. a
// shipping platform or a chat channel.
type WebhookEndpoint struct {
	ID       int64  `json:"id"`
	Kind     string `json:"kind"` // "shipping" | "chat"
	URL      string `json:"url"`
	IsActive bool   `json:"isActive"`
}

// WebhookEvent is the JSON payload posted to endpoints on order status
// changes. EventID is a fresh UUID per delivery attempt target.
type WebhookEvent struct {
	EventID    string `json:"eventId"`
	Event      string `json:"event"`
	OrderID    int64  `json:"orderId"`
	Status     string `json:"status"`
	ClientID   int64  `json:"clientId"`
	OccurredAt string `json:"occurredAt"`
}
