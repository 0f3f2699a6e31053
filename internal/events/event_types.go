package events

import (
	"time"

	"github.com/medikita/platform/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderCreated EventType = "order_created"
	EventOrderPaid    EventType = "order_paid"
	EventOrderExpired EventType = "order_expired"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	OrderRef  string      `json:"order_ref"`
	UserEmail string      `json:"user_email"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	TotalIDR   int64  `json:"total_idr"`
	ItemCount  int    `json:"item_count"`
	InvoiceURL string `json:"invoice_url,omitempty"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}
