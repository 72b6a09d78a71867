package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/utils"
)

// ProductRepository handles data access for products and categories.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `p.id, p.code, p.title, p.category_id, p.cost_price, p.sale_price,
        p.unit, p.stock, p.initial_stock, p.on_sale, p.is_deleted, p.created_by,
        p.created_at, p.updated_at, c.name AS category_name`

// GetAll returns non-deleted products matching the filter, newest first.
// Zero-stock products are hidden unless filter.ShowEmpty is set.
func (r *ProductRepository) GetAll(filter *models.ProductFilter) ([]models.Product, int, error) {
	where := []string{"p.is_deleted = false"}
	args := []interface{}{}
	argIdx := 1

	if !filter.ShowEmpty {
		where = append(where, "p.stock > 0")
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(p.title ILIKE '%%' || $%d || '%%' OR p.code ILIKE '%%' || $%d || '%%')", argIdx, argIdx))
		args = append(args, filter.Search)
		argIdx++
	}
	if filter.CategoryID > 0 {
		where = append(where, fmt.Sprintf("p.category_id = $%d", argIdx))
		args = append(args, filter.CategoryID)
		argIdx++
	}
	if filter.CategoryName != "" {
		where = append(where, fmt.Sprintf("c.name = $%d", argIdx))
		args = append(args, filter.CategoryName)
		argIdx++
	}

	baseFrom := `FROM products p LEFT JOIN categories c ON c.id = p.category_id WHERE ` + strings.Join(where, " AND ")

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(1) `+baseFrom, args...); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	listQuery := fmt.Sprintf(`SELECT %s %s ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, baseFrom, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	var products []models.Product
	if err := r.db.Select(&products, listQuery, args...); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID returns a single non-deleted product by id.
func (r *ProductRepository) GetByID(id int64) (*models.Product, error) {
	q := fmt.Sprintf(`SELECT %s FROM products p LEFT JOIN categories c ON c.id = p.category_id
        WHERE p.id = $1 AND p.is_deleted = false LIMIT 1`, productColumns)

	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product. The partial unique index on active codes maps
// a duplicate to utils.ErrDuplicateCode.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `
        INSERT INTO products (code, title, category_id, cost_price, sale_price, unit,
            stock, initial_stock, on_sale, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRowx(q,
		p.Code, p.Title, p.CategoryID, p.CostPrice, p.SalePrice, p.Unit,
		p.Stock, p.InitialStock, p.OnSale, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.ErrDuplicateCode
		}
		return err
	}
	return nil
}

// Update persists editable product fields and refreshes updated_at.
func (r *ProductRepository) Update(p *models.Product) error {
	const q = `
        UPDATE products SET
            code = $1, title = $2, category_id = $3, cost_price = $4, sale_price = $5,
            unit = $6, stock = $7, on_sale = $8, updated_at = NOW()
        WHERE id = $9 AND is_deleted = false
        RETURNING updated_at`

	err := r.db.QueryRowx(q,
		p.Code, p.Title, p.CategoryID, p.CostPrice, p.SalePrice,
		p.Unit, p.Stock, p.OnSale, p.ID,
	).Scan(&p.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.ErrDuplicateCode
		}
		return err
	}
	return nil
}

// SoftDelete marks a product deleted, freeing its code for reuse.
func (r *ProductRepository) SoftDelete(id int64) error {
	res, err := r.db.Exec(`UPDATE products SET is_deleted = true, updated_at = NOW()
        WHERE id = $1 AND is_deleted = false`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ClearOnSale turns off the on_sale flag after a product is unlisted.
func (r *ProductRepository) ClearOnSale(id int64) error {
	_, err := r.db.Exec(`UPDATE products SET on_sale = false, updated_at = NOW() WHERE id = $1`, id)
	return err
}

// GetLowStock returns non-deleted products with 0 < stock < threshold.
func (r *ProductRepository) GetLowStock(threshold int) ([]models.Product, error) {
	q := fmt.Sprintf(`SELECT %s FROM products p LEFT JOIN categories c ON c.id = p.category_id
        WHERE p.is_deleted = false AND p.stock > 0 AND p.stock < $1
        ORDER BY p.stock ASC`, productColumns)

	var products []models.Product
	if err := r.db.Select(&products, q, threshold); err != nil {
		return nil, err
	}
	return products, nil
}

// --- Categories ---

// GetCategories returns all categories with their product counts.
func (r *ProductRepository) GetCategories() ([]models.Category, error) {
	const q = `
        SELECT c.id, c.name, c.created_at,
            (SELECT COUNT(1) FROM products p WHERE p.category_id = c.id AND p.is_deleted = false) AS product_count
        FROM categories c
        ORDER BY c.name`

	var categories []models.Category
	if err := r.db.Select(&categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory inserts a new category.
func (r *ProductRepository) CreateCategory(c *models.Category) error {
	err := r.db.QueryRowx(`INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at`, c.Name).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.ErrDuplicateCode
		}
		return err
	}
	return nil
}

// UpdateCategory renames a category.
func (r *ProductRepository) UpdateCategory(c *models.Category) error {
	res, err := r.db.Exec(`UPDATE categories SET name = $1 WHERE id = $2`, c.Name, c.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.ErrDuplicateCode
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCategory removes a category; products keep a NULL category via FK.
func (r *ProductRepository) DeleteCategory(id int64) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
