package dto

import "time"

// ProductRequest payload for admin product writes.
type ProductRequest struct {
	Slug          string `json:"slug"`
	NameID        string `json:"name_id"`
	NameEN        string `json:"name_en"`
	DescriptionID string `json:"description_id"`
	DescriptionEN string `json:"description_en"`
	Category      string `json:"category"`
	PriceIDR      int64  `json:"price_idr"`
	StockQty      int    `json:"stock_qty"`
	ImageURL      string `json:"image_url"`
	Published     bool   `json:"published"`
}

// ProductResponse is a storefront product.
type ProductResponse struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	NameID        string    `json:"name_id"`
	NameEN        string    `json:"name_en"`
	DescriptionID string    `json:"description_id"`
	DescriptionEN string    `json:"description_en"`
	Category      string    `json:"category"`
	PriceIDR      int64     `json:"price_idr"`
	StockQty      int       `json:"stock_qty"`
	ImageURL      string    `json:"image_url"`
	Published     bool      `json:"published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
