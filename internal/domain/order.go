package domain

import "time"

// OrderStatus represents lifecycle states for an order.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "PENDING"
	OrderStatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
	OrderStatusPaid            OrderStatus = "PAID"
	OrderStatusExpired         OrderStatus = "EXPIRED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
)

// Order is a purchase made by an identity-provider user. UserID is the
// provider-issued identifier; no local account record exists.
type Order struct {
	ID         string
	Ref        string
	UserID     string
	UserEmail  string
	TotalIDR   int64
	Status     OrderStatus
	InvoiceID  *string
	InvoiceURL *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []OrderItem
}

// OrderItem snapshots product name and price at order time.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	NameEN    string
	PriceIDR  int64
	Quantity  int
}
