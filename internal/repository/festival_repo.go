package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/easystock/easystock-api/internal/models"
)

// FestivalRepository handles data access for festivals and best sellers.
type FestivalRepository struct {
	db *sqlx.DB
}

// NewFestivalRepository creates a new FestivalRepository.
func NewFestivalRepository(db *sqlx.DB) *FestivalRepository {
	return &FestivalRepository{db: db}
}

const festivalColumns = `id, name, description, start_date, end_date, is_recurring,
        category, icon, color, notes, created_at, updated_at`

// GetAll returns all festivals ordered by start date.
func (r *FestivalRepository) GetAll() ([]models.Festival, error) {
	var festivals []models.Festival
	if err := r.db.Select(&festivals, `SELECT `+festivalColumns+` FROM festivals ORDER BY start_date`); err != nil {
		return nil, err
	}
	return festivals, nil
}

// GetByID returns a festival by id.
func (r *FestivalRepository) GetByID(id int64) (*models.Festival, error) {
	var f models.Festival
	if err := r.db.Get(&f, `SELECT `+festivalColumns+` FROM festivals WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &f, nil
}

// GetByName returns a festival by exact name, if present.
func (r *FestivalRepository) GetByName(name string) (*models.Festival, error) {
	var f models.Festival
	if err := r.db.Get(&f, `SELECT `+festivalColumns+` FROM festivals WHERE name = $1 LIMIT 1`, name); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a festival.
func (r *FestivalRepository) Create(f *models.Festival) error {
	const q = `
        INSERT INTO festivals (name, description, start_date, end_date, is_recurring, category, icon, color, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q, f.Name, f.Description, f.StartDate, f.EndDate,
		f.IsRecurring, f.Category, f.Icon, f.Color, f.Notes).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

// Update persists festival fields.
func (r *FestivalRepository) Update(f *models.Festival) error {
	const q = `
        UPDATE festivals SET name = $1, description = $2, start_date = $3, end_date = $4,
            is_recurring = $5, category = $6, icon = $7, color = $8, notes = $9, updated_at = NOW()
        WHERE id = $10 RETURNING updated_at`

	err := r.db.QueryRowx(q, f.Name, f.Description, f.StartDate, f.EndDate,
		f.IsRecurring, f.Category, f.Icon, f.Color, f.Notes, f.ID).Scan(&f.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	return err
}

// Delete removes a festival and, via FK cascade, its best-seller rows.
func (r *FestivalRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM festivals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetUpcoming returns festivals starting within the next `days` days.
func (r *FestivalRepository) GetUpcoming(days int) ([]models.Festival, error) {
	const q = `SELECT ` + festivalColumns + ` FROM festivals
        WHERE start_date >= CURRENT_DATE AND start_date <= CURRENT_DATE + $1 * INTERVAL '1 day'
        ORDER BY start_date`

	var festivals []models.Festival
	if err := r.db.Select(&festivals, q, days); err != nil {
		return nil, err
	}
	return festivals, nil
}

// GetNext returns the next festival starting on or after today, or
// sql.ErrNoRows when none exists.
func (r *FestivalRepository) GetNext() (*models.Festival, error) {
	var f models.Festival
	if err := r.db.Get(&f, `SELECT `+festivalColumns+` FROM festivals
        WHERE start_date >= CURRENT_DATE ORDER BY start_date LIMIT 1`); err != nil {
		return nil, err
	}
	return &f, nil
}

// GetOverlappingMonth returns festivals whose window overlaps the given month.
func (r *FestivalRepository) GetOverlappingMonth(year int, month time.Month) ([]models.Festival, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	const q = `SELECT ` + festivalColumns + ` FROM festivals
        WHERE start_date < $2 AND end_date >= $1
        ORDER BY start_date`

	var festivals []models.Festival
	if err := r.db.Select(&festivals, q, monthStart, monthEnd); err != nil {
		return nil, err
	}
	return festivals, nil
}

// GetActive returns festivals whose window covers today.
func (r *FestivalRepository) GetActive() ([]models.Festival, error) {
	var festivals []models.Festival
	if err := r.db.Select(&festivals, `SELECT `+festivalColumns+` FROM festivals
        WHERE start_date <= CURRENT_DATE AND end_date >= CURRENT_DATE`); err != nil {
		return nil, err
	}
	return festivals, nil
}
