package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/easystock/easystock-api/internal/models"
)

// NotificationRepository handles data access for LINE notification settings.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const settingsColumns = `id, user_id, line_user_id, enabled, linked_at, created_at, updated_at`

// GetOrCreate returns the settings row for a user, creating it on first use.
func (r *NotificationRepository) GetOrCreate(userID int64) (*models.NotificationSettings, error) {
	const q = `
        INSERT INTO notification_settings (user_id) VALUES ($1)
        ON CONFLICT (user_id) DO UPDATE SET updated_at = notification_settings.updated_at
        RETURNING ` + settingsColumns

	var s models.NotificationSettings
	if err := r.db.Get(&s, q, userID); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByLineUserID returns the settings row linked to a LINE account, if any.
func (r *NotificationRepository) GetByLineUserID(lineUserID string) (*models.NotificationSettings, error) {
	var s models.NotificationSettings
	if err := r.db.Get(&s, `SELECT `+settingsColumns+` FROM notification_settings
        WHERE line_user_id = $1 LIMIT 1`, lineUserID); err != nil {
		return nil, err
	}
	return &s, nil
}

// Link attaches a LINE account to a user and enables notifications.
func (r *NotificationRepository) Link(userID int64, lineUserID string) error {
	const q = `
        INSERT INTO notification_settings (user_id, line_user_id, enabled, linked_at)
        VALUES ($1, $2, true, NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            line_user_id = EXCLUDED.line_user_id,
            enabled = true,
            linked_at = NOW(),
            updated_at = NOW()`

	_, err := r.db.Exec(q, userID, lineUserID)
	return err
}

// Unlink detaches the LINE account from a user.
func (r *NotificationRepository) Unlink(userID int64) error {
	_, err := r.db.Exec(`UPDATE notification_settings
        SET line_user_id = NULL, enabled = false, linked_at = NULL, updated_at = NOW()
        WHERE user_id = $1`, userID)
	return err
}

// GetConnected returns all settings rows linked to a LINE account, joined
// with the owning user for display.
func (r *NotificationRepository) GetConnected() ([]models.NotificationSettings, error) {
	var settings []models.NotificationSettings
	if err := r.db.Select(&settings, `SELECT `+settingsColumns+` FROM notification_settings
        WHERE line_user_id IS NOT NULL AND enabled = true ORDER BY linked_at DESC`); err != nil {
		return nil, err
	}
	return settings, nil
}

// ConnectedLineIDs returns the LINE user ids of all enabled connections.
func (r *NotificationRepository) ConnectedLineIDs() ([]string, error) {
	var ids []string
	if err := r.db.Select(&ids, `SELECT line_user_id FROM notification_settings
        WHERE line_user_id IS NOT NULL AND enabled = true`); err != nil {
		return nil, err
	}
	return ids, nil
}
