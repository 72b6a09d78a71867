package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/easystock/easystock-api/internal/models"
)

// DashboardRepository handles the aggregate queries behind the dashboards.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// TotalStock sums stock across non-deleted products.
func (r *DashboardRepository) TotalStock() (int, error) {
	var total int
	err := r.db.Get(&total, `SELECT COALESCE(SUM(stock), 0) FROM products WHERE is_deleted = false`)
	return total, err
}

// ProductCount counts non-deleted products.
func (r *DashboardRepository) ProductCount() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(1) FROM products WHERE is_deleted = false`)
	return count, err
}

// InventoryValue sums stock * cost_price across non-deleted products.
func (r *DashboardRepository) InventoryValue() (float64, error) {
	var value float64
	err := r.db.Get(&value, `SELECT COALESCE(SUM(stock * cost_price), 0) FROM products WHERE is_deleted = false`)
	return value, err
}

// InBetween sums initial stock of products created inside the range. Product
// creation is the receipt event in this system.
func (r *DashboardRepository) InBetween(from, until time.Time) (int, error) {
	var total int
	err := r.db.Get(&total, `SELECT COALESCE(SUM(initial_stock), 0) FROM products
        WHERE is_deleted = false AND created_at >= $1 AND created_at < $2`, from, until)
	return total, err
}

// CategoryStats aggregates stock and value per category.
func (r *DashboardRepository) CategoryStats() ([]models.CategoryStats, error) {
	const q = `
        SELECT p.category_id, COALESCE(c.name, 'Uncategorized') AS category_name,
            COUNT(1) AS product_count,
            COALESCE(SUM(p.stock), 0) AS total_stock,
            COALESCE(SUM(p.stock * p.cost_price), 0) AS total_value
        FROM products p
        LEFT JOIN categories c ON c.id = p.category_id
        WHERE p.is_deleted = false
        GROUP BY p.category_id, c.name
        ORDER BY total_value DESC`

	var stats []models.CategoryStats
	if err := r.db.Select(&stats, q); err != nil {
		return nil, err
	}
	return stats, nil
}

// FinancialSummary returns the selling-value overview for admins.
func (r *DashboardRepository) FinancialSummary() (*models.FinancialSummary, error) {
	const q = `
        SELECT COALESCE(SUM(stock * sale_price), 0) AS total_selling_value,
            COUNT(1) AS product_count,
            COALESCE(SUM(stock), 0) AS total_stock
        FROM products WHERE is_deleted = false`

	var s models.FinancialSummary
	if err := r.db.Get(&s, q); err != nil {
		return nil, err
	}
	return &s, nil
}

// TopByValue returns the products holding the most inventory value.
func (r *DashboardRepository) TopByValue(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
        SELECT p.id, p.code, p.title, p.category_id, p.cost_price, p.sale_price,
            p.unit, p.stock, p.initial_stock, p.on_sale, p.is_deleted, p.created_by,
            p.created_at, p.updated_at, c.name AS category_name
        FROM products p
        LEFT JOIN categories c ON c.id = p.category_id
        WHERE p.is_deleted = false
        ORDER BY p.stock * p.cost_price DESC
        LIMIT $1`

	var products []models.Product
	if err := r.db.Select(&products, q, limit); err != nil {
		return nil, err
	}
	return products, nil
}
