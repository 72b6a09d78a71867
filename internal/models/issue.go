package models

import "time"

// Issue is the header of one stock issuance batch. All lines of a batch are
// committed in a single DB transaction.
type Issue struct {
	ID        int64     `db:"id" json:"id"`
	CreatedBy *int64    `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Lines []IssueLine `json:"lines,omitempty"`
}

// IssueLine records the quantity taken from one product within an issuance.
// SalePrice snapshots the product's sale price at issue time.
type IssueLine struct {
	ID        int64     `db:"id" json:"id"`
	IssueID   int64     `db:"issue_id" json:"issueId"`
	ProductID int64     `db:"product_id" json:"productId"`
	Quantity  int       `db:"quantity" json:"quantity"`
	SalePrice float64   `db:"sale_price" json:"salePrice"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Joined from products (populated via JOIN)
	ProductCode  string `db:"product_code" json:"productCode,omitempty"`
	ProductTitle string `db:"product_title" json:"productTitle,omitempty"`
}

// IssueItem is one requested line in an issuance request.
type IssueItem struct {
	Product int64 `json:"product"`
	Qty     int   `json:"qty"`
}

// Movement is one entry in the merged stock movement stream. Type is "in" for
// product receipts and "out" for issue lines.
type Movement struct {
	Type         string    `db:"type" json:"type"`
	ProductID    int64     `db:"product_id" json:"productId"`
	ProductCode  string    `db:"product_code" json:"productCode"`
	ProductTitle string    `db:"product_title" json:"productTitle"`
	Quantity     int       `db:"quantity" json:"quantity"`
	ActorName    string    `db:"actor_name" json:"actorName"`
	OccurredAt   time.Time `db:"occurred_at" json:"occurredAt"`
}
