package models

import "time"

// Product represents an item in the inventory catalog. Rows are soft-deleted:
// the unique constraint on code only covers rows where is_deleted is false,
// so a deleted product's code can be reused.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID           int64     `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Title        string    `db:"title" json:"title"`
	CategoryID   *int64    `db:"category_id" json:"categoryId,omitempty"`
	CostPrice    float64   `db:"cost_price" json:"costPrice"`
	SalePrice    float64   `db:"sale_price" json:"salePrice"`
	Unit         string    `db:"unit" json:"unit"`
	Stock        int       `db:"stock" json:"stock"`
	InitialStock int       `db:"initial_stock" json:"initialStock"`
	OnSale       bool      `db:"on_sale" json:"onSale"`
	IsDeleted    bool      `db:"is_deleted" json:"-"`
	CreatedBy    *int64    `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`

	// Joined from categories (populated via LEFT JOIN)
	CategoryName *string `db:"category_name" json:"categoryName,omitempty"`
}

// Profit returns the per-unit profit.
func (p *Product) Profit() float64 {
	return p.SalePrice - p.CostPrice
}

// ProfitMargin returns the profit as a percentage of the sale price,
// or 0 when the sale price is zero.
func (p *Product) ProfitMargin() float64 {
	if p.SalePrice == 0 {
		return 0
	}
	return (p.SalePrice - p.CostPrice) / p.SalePrice * 100
}

// IsLowStock reports whether stock is positive but under the threshold.
func (p *Product) IsLowStock(threshold int) bool {
	return p.Stock > 0 && p.Stock < threshold
}

// Category groups products for filtering and reporting.
type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Calculated field (populated via subquery)
	ProductCount int `db:"product_count" json:"productCount"`
}

// ProductFilter narrows product list queries.
type ProductFilter struct {
	Search       string
	CategoryID   int64
	CategoryName string
	ShowEmpty    bool
	Page         int
	Limit        int
}
