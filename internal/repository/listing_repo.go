package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/easystock/easystock-api/internal/models"
)

// ListingRepository handles data access for listings.
type ListingRepository struct {
	db *sqlx.DB
}

// NewListingRepository creates a new ListingRepository.
func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `l.id, l.product_id, l.title, l.sale_price, l.unit, l.quantity,
        l.is_active, l.created_at, l.updated_at,
        p.code AS product_code, p.title AS product_title, p.cost_price`

// GetAll returns listings matching the filter. Active only unless
// filter.IncludeInactive is set. Search spans product name/code and the
// listing title.
func (r *ListingRepository) GetAll(filter *models.ListingFilter) ([]models.Listing, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if !filter.IncludeInactive {
		where = append(where, "l.is_active = true")
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf(
			"(l.title ILIKE '%%' || $%d || '%%' OR p.title ILIKE '%%' || $%d || '%%' OR p.code ILIKE '%%' || $%d || '%%')",
			argIdx, argIdx, argIdx))
		args = append(args, filter.Search)
		argIdx++
	}
	if filter.CategoryID > 0 {
		where = append(where, fmt.Sprintf("p.category_id = $%d", argIdx))
		args = append(args, filter.CategoryID)
		argIdx++
	}

	q := fmt.Sprintf(`SELECT %s FROM listings l JOIN products p ON p.id = l.product_id
        WHERE %s ORDER BY l.updated_at DESC`, listingColumns, strings.Join(where, " AND "))

	var listings []models.Listing
	if err := r.db.Select(&listings, q, args...); err != nil {
		return nil, err
	}
	return listings, nil
}

// GetByID returns a single listing by id.
func (r *ListingRepository) GetByID(id int64) (*models.Listing, error) {
	q := fmt.Sprintf(`SELECT %s FROM listings l JOIN products p ON p.id = l.product_id
        WHERE l.id = $1 LIMIT 1`, listingColumns)

	var l models.Listing
	if err := r.db.Get(&l, q, id); err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByProductID returns the listing for a product, if any.
func (r *ListingRepository) GetByProductID(productID int64) (*models.Listing, error) {
	q := fmt.Sprintf(`SELECT %s FROM listings l JOIN products p ON p.id = l.product_id
        WHERE l.product_id = $1 LIMIT 1`, listingColumns)

	var l models.Listing
	if err := r.db.Get(&l, q, productID); err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateDisplay persists the display fields the storefront may edit.
func (r *ListingRepository) UpdateDisplay(l *models.Listing) error {
	const q = `UPDATE listings SET title = $1, sale_price = $2, unit = $3, updated_at = NOW()
        WHERE id = $4 RETURNING updated_at`

	err := r.db.QueryRowx(q, l.Title, l.SalePrice, l.Unit, l.ID).Scan(&l.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	return err
}

// Deactivate hides a listing while keeping its accumulated quantity.
func (r *ListingRepository) Deactivate(id int64) error {
	res, err := r.db.Exec(`UPDATE listings SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a listing row.
func (r *ListingRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByProductID removes a product's listing, if present. Used by the
// unlist operation which also clears the product's on_sale flag.
func (r *ListingRepository) DeleteByProductID(productID int64) error {
	_, err := r.db.Exec(`DELETE FROM listings WHERE product_id = $1`, productID)
	return err
}
