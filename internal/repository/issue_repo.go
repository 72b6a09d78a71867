package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/easystock/easystock-api/internal/models"
)

// IssueTx exposes the operations available inside one issuance transaction.
// All methods run against the same open transaction; LockProduct takes a row
// lock so stock checks and decrements for the same product are serialized
// across concurrent batches.
type IssueTx interface {
	LockProduct(id int64) (*models.Product, error)
	CreateIssue(createdBy *int64) (int64, error)
	AddLine(line *models.IssueLine) error
	IssueStock(productID int64, qty int) error
	UpsertListing(p *models.Product, qty int) error
}

// IssueRepository handles data access for issuances and movement queries.
type IssueRepository struct {
	db *sqlx.DB
}

// NewIssueRepository creates a new IssueRepository.
func NewIssueRepository(db *sqlx.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

// WithTx runs fn inside a database transaction. The transaction is rolled
// back when fn returns an error and committed otherwise.
func (r *IssueRepository) WithTx(ctx context.Context, fn func(tx IssueTx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&issueTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type issueTx struct {
	tx *sqlx.Tx
}

// LockProduct loads a non-deleted product under FOR UPDATE.
// Returns sql.ErrNoRows when the id does not exist or the row is deleted.
func (t *issueTx) LockProduct(id int64) (*models.Product, error) {
	const q = `
        SELECT id, code, title, category_id, cost_price, sale_price, unit,
            stock, initial_stock, on_sale, is_deleted, created_by, created_at, updated_at
        FROM products
        WHERE id = $1 AND is_deleted = false
        FOR UPDATE`

	var p models.Product
	if err := t.tx.Get(&p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateIssue inserts the batch header and returns its id.
func (t *issueTx) CreateIssue(createdBy *int64) (int64, error) {
	var id int64
	err := t.tx.QueryRowx(`INSERT INTO issues (created_by) VALUES ($1) RETURNING id`, createdBy).Scan(&id)
	return id, err
}

// AddLine appends an issue line to the batch.
func (t *issueTx) AddLine(line *models.IssueLine) error {
	const q = `
        INSERT INTO issue_lines (issue_id, product_id, quantity, sale_price)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	return t.tx.QueryRowx(q, line.IssueID, line.ProductID, line.Quantity, line.SalePrice).
		Scan(&line.ID, &line.CreatedAt)
}

// IssueStock decrements stock and marks the product on sale. The caller has
// already verified stock >= qty under the row lock.
func (t *issueTx) IssueStock(productID int64, qty int) error {
	_, err := t.tx.Exec(`UPDATE products SET stock = stock - $1, on_sale = true, updated_at = NOW()
        WHERE id = $2`, qty, productID)
	return err
}

// UpsertListing creates the product's listing seeded from the product, or
// adds qty to the existing one and reactivates it.
func (t *issueTx) UpsertListing(p *models.Product, qty int) error {
	const q = `
        INSERT INTO listings (product_id, title, sale_price, unit, quantity, is_active)
        VALUES ($1, $2, $3, $4, $5, true)
        ON CONFLICT (product_id) DO UPDATE SET
            quantity = listings.quantity + EXCLUDED.quantity,
            is_active = true,
            updated_at = NOW()`

	_, err := t.tx.Exec(q, p.ID, p.Title, p.SalePrice, p.Unit, qty)
	return err
}

// --- read-side queries ---

// GetIssueByID returns one issue header with its lines.
func (r *IssueRepository) GetIssueByID(id int64) (*models.Issue, error) {
	var issue models.Issue
	if err := r.db.Get(&issue, `SELECT id, created_by, created_at FROM issues WHERE id = $1`, id); err != nil {
		return nil, err
	}

	const q = `
        SELECT l.id, l.issue_id, l.product_id, l.quantity, l.sale_price, l.created_at,
            p.code AS product_code, p.title AS product_title
        FROM issue_lines l
        JOIN products p ON p.id = l.product_id
        WHERE l.issue_id = $1
        ORDER BY l.id`
	if err := r.db.Select(&issue.Lines, q, id); err != nil {
		return nil, err
	}
	return &issue, nil
}

// TopProducts aggregates issue lines between from and until (inclusive of
// from, exclusive of until). Zero times disable the respective bound.
func (r *IssueRepository) TopProducts(from, until time.Time, minQty, limit int) ([]models.TopProduct, error) {
	const q = `
        SELECT l.product_id, p.code AS product_code, p.title AS product_title,
            COALESCE(SUM(l.quantity), 0) AS total_qty,
            COALESCE(SUM(l.quantity * l.sale_price), 0) AS total_value,
            COUNT(DISTINCT l.issue_id) AS order_count
        FROM issue_lines l
        JOIN products p ON p.id = l.product_id
        WHERE ($1::timestamptz IS NULL OR l.created_at >= $1)
        AND ($2::timestamptz IS NULL OR l.created_at < $2)
        GROUP BY l.product_id, p.code, p.title
        HAVING COALESCE(SUM(l.quantity), 0) >= $3
        ORDER BY total_qty DESC
        LIMIT $4`

	var fromArg, untilArg interface{}
	if !from.IsZero() {
		fromArg = from
	}
	if !until.IsZero() {
		untilArg = until
	}

	var tops []models.TopProduct
	if err := r.db.Select(&tops, q, fromArg, untilArg, minQty, limit); err != nil {
		return nil, err
	}
	return tops, nil
}

// IssuedInWindow sums quantities per product for one festival window.
func (r *IssueRepository) IssuedInWindow(from, until time.Time) (map[int64]int, error) {
	const q = `
        SELECT l.product_id, COALESCE(SUM(l.quantity), 0) AS total_qty
        FROM issue_lines l
        WHERE l.created_at >= $1 AND l.created_at < $2
        GROUP BY l.product_id`

	rows, err := r.db.Queryx(q, from, until)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int64]int)
	for rows.Next() {
		var productID int64
		var qty int
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, err
		}
		totals[productID] = qty
	}
	return totals, rows.Err()
}

// OutBetween sums all issued quantities in a time range.
func (r *IssueRepository) OutBetween(from, until time.Time) (int, error) {
	var total int
	err := r.db.Get(&total, `SELECT COALESCE(SUM(quantity), 0) FROM issue_lines
        WHERE created_at >= $1 AND created_at < $2`, from, until)
	return total, err
}

// Movements returns the merged in/out stream, newest first. Receipts are
// products created in the window (initial stock in); issues are issue lines.
func (r *IssueRepository) Movements(search, movementType string, from, until time.Time, limit int) ([]models.Movement, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	const q = `
        SELECT * FROM (
            SELECT 'out' AS type, l.product_id, p.code AS product_code, p.title AS product_title,
                l.quantity, COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username, '') AS actor_name,
                l.created_at AS occurred_at
            FROM issue_lines l
            JOIN products p ON p.id = l.product_id
            JOIN issues i ON i.id = l.issue_id
            LEFT JOIN users u ON u.id = i.created_by
            UNION ALL
            SELECT 'in' AS type, p.id AS product_id, p.code AS product_code, p.title AS product_title,
                p.initial_stock AS quantity, COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username, '') AS actor_name,
                p.created_at AS occurred_at
            FROM products p
            LEFT JOIN users u ON u.id = p.created_by
            WHERE p.is_deleted = false AND p.initial_stock > 0
        ) m
        WHERE ($1 = '' OR m.product_title ILIKE '%' || $1 || '%' OR m.product_code ILIKE '%' || $1 || '%')
        AND ($2 = '' OR m.type = $2)
        AND ($3::timestamptz IS NULL OR m.occurred_at >= $3)
        AND ($4::timestamptz IS NULL OR m.occurred_at < $4)
        ORDER BY m.occurred_at DESC
        LIMIT $5`

	var fromArg, untilArg interface{}
	if !from.IsZero() {
		fromArg = from
	}
	if !until.IsZero() {
		untilArg = until
	}

	var movements []models.Movement
	if err := r.db.Select(&movements, q, search, movementType, fromArg, untilArg, limit); err != nil {
		return nil, err
	}
	return movements, nil
}
