package models

import "time"

// Listing is the storefront projection of a product. At most one listing
// exists per product; quantity accumulates across issuances.
type Listing struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"productId"`
	Title     string    `db:"title" json:"title"`
	SalePrice float64   `db:"sale_price" json:"salePrice"`
	Unit      string    `db:"unit" json:"unit"`
	Quantity  int       `db:"quantity" json:"quantity"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Joined from products (populated via JOIN)
	ProductCode  string  `db:"product_code" json:"productCode,omitempty"`
	ProductTitle string  `db:"product_title" json:"productTitle,omitempty"`
	CostPrice    float64 `db:"cost_price" json:"costPrice"`
}

// UnitProfit returns the per-unit profit of the listing against the
// product's cost price.
func (l *Listing) UnitProfit() float64 {
	return l.SalePrice - l.CostPrice
}

// ListingFilter narrows listing list queries.
type ListingFilter struct {
	Search          string
	CategoryID      int64
	IncludeInactive bool
}
