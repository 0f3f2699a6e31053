package dto

import "time"

// OrderLineRequest is one requested cart line.
type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest payload for checkout.
type CreateOrderRequest struct {
	Items []OrderLineRequest `json:"items"`
}

// OrderItemResponse is a snapshotted order line.
type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	PriceIDR  int64  `json:"price_idr"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse is an order with its invoice state.
type OrderResponse struct {
	Ref        string              `json:"ref"`
	Status     string              `json:"status"`
	TotalIDR   int64               `json:"total_idr"`
	InvoiceURL *string             `json:"invoice_url,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []OrderItemResponse `json:"items,omitempty"`
}
