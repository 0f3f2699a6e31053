package domain

import "time"

// Product is a storefront item with bilingual copy. Prices are in whole
// rupiah; there are no fractional amounts.
type Product struct {
	ID            string
	Slug          string
	NameID        string
	NameEN        string
	DescriptionID string
	DescriptionEN string
	Category      string
	PriceIDR      int64
	StockQty      int
	ImageURL      string
	Published     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
