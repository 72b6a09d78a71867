package models

import "time"

// NotificationSettings links a user to a LINE chat account. LineUserID is nil
// until the user redeems a verification code through the chat bot.
type NotificationSettings struct {
	ID         int64      `db:"id" json:"id"`
	UserID     int64      `db:"user_id" json:"userId"`
	LineUserID *string    `db:"line_user_id" json:"lineUserId,omitempty"`
	Enabled    bool       `db:"enabled" json:"enabled"`
	LinkedAt   *time.Time `db:"linked_at" json:"linkedAt,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

// Connected reports whether the settings row is linked to a LINE account.
func (n *NotificationSettings) Connected() bool {
	return n.LineUserID != nil && *n.LineUserID != ""
}
