package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/easystock/easystock-api/internal/models"
)

// BestSellerRepository handles data access for per-festival sales stats.
type BestSellerRepository struct {
	db *sqlx.DB
}

// NewBestSellerRepository creates a new BestSellerRepository.
func NewBestSellerRepository(db *sqlx.DB) *BestSellerRepository {
	return &BestSellerRepository{db: db}
}

const bestSellerColumns = `b.id, b.product_id, b.festival_id, b.total_issued,
        b.last_year_qty, b.this_year_qty, b.percentage_increase, b.rank, b.updated_at,
        p.code AS product_code, p.title AS product_title, f.name AS festival_name`

const bestSellerFrom = `FROM best_sellers b
        JOIN products p ON p.id = b.product_id
        JOIN festivals f ON f.id = b.festival_id`

// GetAll returns all best-seller rows ordered by festival and rank.
func (r *BestSellerRepository) GetAll() ([]models.BestSeller, error) {
	q := `SELECT ` + bestSellerColumns + ` ` + bestSellerFrom + ` ORDER BY b.festival_id, b.rank`

	var rows []models.BestSeller
	if err := r.db.Select(&rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns one best-seller row.
func (r *BestSellerRepository) GetByID(id int64) (*models.BestSeller, error) {
	q := `SELECT ` + bestSellerColumns + ` ` + bestSellerFrom + ` WHERE b.id = $1 LIMIT 1`

	var b models.BestSeller
	if err := r.db.Get(&b, q, id); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByFestival returns the ranked best sellers for one festival.
func (r *BestSellerRepository) GetByFestival(festivalID int64) ([]models.BestSeller, error) {
	q := `SELECT ` + bestSellerColumns + ` ` + bestSellerFrom + `
        WHERE b.festival_id = $1 ORDER BY b.rank, b.total_issued DESC`

	var rows []models.BestSeller
	if err := r.db.Select(&rows, q, festivalID); err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert inserts or updates the (product, festival) stats row.
func (r *BestSellerRepository) Upsert(b *models.BestSeller) error {
	const q = `
        INSERT INTO best_sellers (product_id, festival_id, total_issued, last_year_qty,
            this_year_qty, percentage_increase, rank)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (product_id, festival_id) DO UPDATE SET
            total_issued = EXCLUDED.total_issued,
            last_year_qty = EXCLUDED.last_year_qty,
            this_year_qty = EXCLUDED.this_year_qty,
            percentage_increase = EXCLUDED.percentage_increase,
            rank = EXCLUDED.rank,
            updated_at = NOW()
        RETURNING id, updated_at`

	return r.db.QueryRowx(q, b.ProductID, b.FestivalID, b.TotalIssued, b.LastYearQty,
		b.ThisYearQty, b.PercentageIncrease, b.Rank).Scan(&b.ID, &b.UpdatedAt)
}

// Delete removes a best-seller row.
func (r *BestSellerRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM best_sellers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CategoryAnalysis aggregates a festival's best sellers per product category.
func (r *BestSellerRepository) CategoryAnalysis(festivalID int64) ([]models.CategoryStats, error) {
	const q = `
        SELECT p.category_id, COALESCE(c.name, 'Uncategorized') AS category_name,
            COUNT(DISTINCT b.product_id) AS product_count,
            COALESCE(SUM(b.total_issued), 0) AS total_stock,
            COALESCE(SUM(b.total_issued * p.sale_price), 0) AS total_value
        FROM best_sellers b
        JOIN products p ON p.id = b.product_id
        LEFT JOIN categories c ON c.id = p.category_id
        WHERE b.festival_id = $1
        GROUP BY p.category_id, c.name
        ORDER BY total_stock DESC`

	var stats []models.CategoryStats
	if err := r.db.Select(&stats, q, festivalID); err != nil {
		return nil, err
	}
	return stats, nil
}
