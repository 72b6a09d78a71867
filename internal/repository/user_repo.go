package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/utils"
)

// UserRepository handles data access for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, role,
        is_active, is_online, last_activity, last_login, date_joined`

// GetByID returns a user by id.
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	var u models.User
	if err := r.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE id = $1 LIMIT 1`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByLogin returns a user matched by username or email (case-insensitive).
func (r *UserRepository) GetByLogin(login string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users
        WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($1) LIMIT 1`

	var u models.User
	if err := r.db.Get(&u, q, login); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAll returns all users, newest first.
func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Select(&users, `SELECT `+userColumns+` FROM users ORDER BY date_joined DESC`); err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts a new user. Unique violations map to duplicate-username or
// duplicate-email sentinels based on the violated constraint.
func (r *UserRepository) Create(u *models.User) error {
	const q = `
        INSERT INTO users (username, email, password_hash, first_name, last_name, role, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, date_joined`

	err := r.db.QueryRowx(q, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.IsActive).
		Scan(&u.ID, &u.DateJoined)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return utils.ErrDuplicateEmail
			}
			return utils.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// Update persists editable account fields.
func (r *UserRepository) Update(u *models.User) error {
	const q = `
        UPDATE users SET email = $1, first_name = $2, last_name = $3, role = $4, is_active = $5
        WHERE id = $6`

	res, err := r.db.Exec(q, u.Email, u.FirstName, u.LastName, u.Role, u.IsActive, u.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.ErrDuplicateEmail
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	_, err := r.db.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	return err
}

// Delete removes a user account.
func (r *UserRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// MarkLogin records a successful login and flips the user online.
func (r *UserRepository) MarkLogin(id int64) error {
	_, err := r.db.Exec(`UPDATE users SET is_online = true, last_login = NOW(), last_activity = NOW()
        WHERE id = $1`, id)
	return err
}

// Heartbeat bumps last_activity and keeps the user online.
func (r *UserRepository) Heartbeat(id int64) error {
	_, err := r.db.Exec(`UPDATE users SET is_online = true, last_activity = NOW() WHERE id = $1`, id)
	return err
}

// MarkOffline flips the user offline on logout.
func (r *UserRepository) MarkOffline(id int64) error {
	_, err := r.db.Exec(`UPDATE users SET is_online = false WHERE id = $1`, id)
	return err
}

// SweepIdle marks users offline whose last activity is older than the cutoff.
// Returns the number of users swept.
func (r *UserRepository) SweepIdle(idleFor time.Duration) (int64, error) {
	res, err := r.db.Exec(`UPDATE users SET is_online = false
        WHERE is_online = true AND (last_activity IS NULL OR last_activity < $1)`,
		time.Now().Add(-idleFor))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats returns aggregate account counts for the admin panel.
func (r *UserRepository) Stats() (*models.UserStats, error) {
	const q = `
        SELECT COUNT(1) AS total,
            COUNT(1) FILTER (WHERE role = 'admin') AS admins,
            COUNT(1) FILTER (WHERE role = 'employee') AS staff,
            COUNT(1) FILTER (WHERE is_online) AS online
        FROM users`

	var s models.UserStats
	if err := r.db.Get(&s, q); err != nil {
		return nil, err
	}
	return &s, nil
}
