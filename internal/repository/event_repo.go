package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/easystock/easystock-api/internal/models"
)

// EventRepository handles data access for custom calendar events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `e.id, e.title, e.date, e.type, e.priority, e.notes, e.created_by,
        e.is_shared, e.created_at, e.updated_at,
        COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username, '') AS creator_name`

const eventFrom = `FROM custom_events e LEFT JOIN users u ON u.id = e.created_by`

// GetVisible returns events the user may see: their own plus shared ones.
// Admins see everything.
func (r *EventRepository) GetVisible(userID int64, isAdmin bool) ([]models.CustomEvent, error) {
	q := `SELECT ` + eventColumns + ` ` + eventFrom
	args := []interface{}{}
	if !isAdmin {
		q += ` WHERE e.is_shared = true OR e.created_by = $1`
		args = append(args, userID)
	}
	q += ` ORDER BY e.date`

	var events []models.CustomEvent
	if err := r.db.Select(&events, q, args...); err != nil {
		return nil, err
	}
	return events, nil
}

// GetByID returns one event.
func (r *EventRepository) GetByID(id int64) (*models.CustomEvent, error) {
	var e models.CustomEvent
	if err := r.db.Get(&e, `SELECT `+eventColumns+` `+eventFrom+` WHERE e.id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetMonth returns visible events inside the given month.
func (r *EventRepository) GetMonth(userID int64, isAdmin bool, year int, month time.Month) ([]models.CustomEvent, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	q := `SELECT ` + eventColumns + ` ` + eventFrom + ` WHERE e.date >= $1 AND e.date < $2`
	args := []interface{}{monthStart, monthEnd}
	if !isAdmin {
		q += ` AND (e.is_shared = true OR e.created_by = $3)`
		args = append(args, userID)
	}
	q += ` ORDER BY e.date`

	var events []models.CustomEvent
	if err := r.db.Select(&events, q, args...); err != nil {
		return nil, err
	}
	return events, nil
}

// GetUpcoming returns visible events starting today or later. When sharedOnly
// is set, private events are excluded even for the owner.
func (r *EventRepository) GetUpcoming(userID int64, isAdmin, sharedOnly bool, limit int) ([]models.CustomEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	q := `SELECT ` + eventColumns + ` ` + eventFrom + ` WHERE e.date >= CURRENT_DATE`
	args := []interface{}{}
	argIdx := 1
	if sharedOnly {
		q += ` AND e.is_shared = true`
	} else if !isAdmin {
		q += ` AND (e.is_shared = true OR e.created_by = $1)`
		args = append(args, userID)
		argIdx++
	}
	q += fmt.Sprintf(` ORDER BY e.date LIMIT $%d`, argIdx)
	args = append(args, limit)

	var events []models.CustomEvent
	if err := r.db.Select(&events, q, args...); err != nil {
		return nil, err
	}
	return events, nil
}

// Create inserts an event.
func (r *EventRepository) Create(e *models.CustomEvent) error {
	const q = `
        INSERT INTO custom_events (title, date, type, priority, notes, created_by, is_shared)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q, e.Title, e.Date, e.Type, e.Priority, e.Notes, e.CreatedBy, e.IsShared).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Update persists mutable event fields.
func (r *EventRepository) Update(e *models.CustomEvent) error {
	const q = `
        UPDATE custom_events SET title = $1, date = $2, type = $3, priority = $4,
            notes = $5, is_shared = $6, updated_at = NOW()
        WHERE id = $7 RETURNING updated_at`

	err := r.db.QueryRowx(q, e.Title, e.Date, e.Type, e.Priority, e.Notes, e.IsShared, e.ID).
		Scan(&e.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	return err
}

// Delete removes an event.
func (r *EventRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM custom_events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
