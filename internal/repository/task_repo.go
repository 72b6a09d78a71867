package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/easystock/easystock-api/internal/models"
)

// TaskRepository handles data access for tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `t.id, t.title, t.description, t.type, t.priority, t.status,
        t.assigned_to, t.created_by, t.due_date, t.completed_at, t.target_quantity,
        t.actual_quantity, t.product_id, t.notes, t.created_at, t.updated_at,
        COALESCE(NULLIF(TRIM(a.first_name || ' ' || a.last_name), ''), a.username, '') AS assignee_name,
        COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username, '') AS creator_name`

const taskFrom = `FROM tasks t
        LEFT JOIN users a ON a.id = t.assigned_to
        LEFT JOIN users u ON u.id = t.created_by`

// GetAll returns tasks matching the filter. When visibleTo is non-zero only
// tasks assigned to or created by that user are returned (employee scoping).
func (r *TaskRepository) GetAll(filter *models.TaskFilter, visibleTo int64) ([]models.Task, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("t.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Priority != "" {
		where = append(where, fmt.Sprintf("t.priority = $%d", argIdx))
		args = append(args, filter.Priority)
		argIdx++
	}
	if filter.Type != "" {
		where = append(where, fmt.Sprintf("t.type = $%d", argIdx))
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.AssignedTo > 0 {
		where = append(where, fmt.Sprintf("t.assigned_to = $%d", argIdx))
		args = append(args, filter.AssignedTo)
		argIdx++
	}
	if visibleTo > 0 {
		where = append(where, fmt.Sprintf("(t.assigned_to = $%d OR t.created_by = $%d)", argIdx, argIdx))
		args = append(args, visibleTo)
		argIdx++
	}

	q := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY t.due_date NULLS LAST, t.created_at DESC`,
		taskColumns, taskFrom, strings.Join(where, " AND "))

	var tasks []models.Task
	if err := r.db.Select(&tasks, q, args...); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID returns one task.
func (r *TaskRepository) GetByID(id int64) (*models.Task, error) {
	q := fmt.Sprintf(`SELECT %s %s WHERE t.id = $1 LIMIT 1`, taskColumns, taskFrom)

	var t models.Task
	if err := r.db.Get(&t, q, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetUrgent returns open tasks with urgent or high priority, most urgent first.
func (r *TaskRepository) GetUrgent(visibleTo int64) ([]models.Task, error) {
	where := `t.priority IN ('urgent', 'high') AND t.status IN ('pending', 'in_progress')`
	args := []interface{}{}
	if visibleTo > 0 {
		where += ` AND (t.assigned_to = $1 OR t.created_by = $1)`
		args = append(args, visibleTo)
	}

	q := fmt.Sprintf(`SELECT %s %s WHERE %s
        ORDER BY CASE t.priority WHEN 'urgent' THEN 0 ELSE 1 END, t.due_date NULLS LAST`,
		taskColumns, taskFrom, where)

	var tasks []models.Task
	if err := r.db.Select(&tasks, q, args...); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create inserts a task.
func (r *TaskRepository) Create(t *models.Task) error {
	const q = `
        INSERT INTO tasks (title, description, type, priority, status, assigned_to,
            created_by, due_date, target_quantity, product_id, notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q, t.Title, t.Description, t.Type, t.Priority, t.Status,
		t.AssignedTo, t.CreatedBy, t.DueDate, t.TargetQuantity, t.ProductID, t.Notes).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// Update persists all mutable task fields.
func (r *TaskRepository) Update(t *models.Task) error {
	const q = `
        UPDATE tasks SET title = $1, description = $2, type = $3, priority = $4,
            status = $5, assigned_to = $6, due_date = $7, completed_at = $8,
            target_quantity = $9, actual_quantity = $10, product_id = $11,
            notes = $12, updated_at = NOW()
        WHERE id = $13 RETURNING updated_at`

	err := r.db.QueryRowx(q, t.Title, t.Description, t.Type, t.Priority, t.Status,
		t.AssignedTo, t.DueDate, t.CompletedAt, t.TargetQuantity, t.ActualQuantity,
		t.ProductID, t.Notes, t.ID).Scan(&t.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	return err
}

// Delete removes a task.
func (r *TaskRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
