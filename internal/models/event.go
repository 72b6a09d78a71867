package models

import "time"

// CustomEvent is a user-created calendar entry. Shared events are visible to
// everyone; private events only to their owner.
type CustomEvent struct {
	ID        int64        `db:"id" json:"id"`
	Title     string       `db:"title" json:"title"`
	Date      time.Time    `db:"date" json:"date"`
	Type      TaskType     `db:"type" json:"type"`
	Priority  TaskPriority `db:"priority" json:"priority"`
	Notes     string       `db:"notes" json:"notes"`
	CreatedBy int64        `db:"created_by" json:"createdBy"`
	IsShared  bool         `db:"is_shared" json:"isShared"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time    `db:"updated_at" json:"updatedAt"`

	// Joined from users (populated via JOIN)
	CreatorName string `db:"creator_name" json:"creatorName,omitempty"`
}

// VisibleTo reports whether the event may be read by the given user.
func (e *CustomEvent) VisibleTo(userID int64, isAdmin bool) bool {
	return e.IsShared || e.CreatedBy == userID || isAdmin
}

// EditableBy reports whether the event may be modified by the given user.
func (e *CustomEvent) EditableBy(userID int64, isAdmin bool) bool {
	return e.CreatedBy == userID || isAdmin
}
