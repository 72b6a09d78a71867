package models

import (
	"fmt"
	"time"
)

// TaskType enumerates task categories.
type TaskType string

const (
	TaskStockCheck TaskType = "stock_check"
	TaskStockOrder TaskType = "stock_order"
	TaskDelivery   TaskType = "delivery"
	TaskMeeting    TaskType = "meeting"
	TaskOther      TaskType = "other"
)

// Valid reports whether the task type is one of the known values.
func (t TaskType) Valid() bool {
	switch t {
	case TaskStockCheck, TaskStockOrder, TaskDelivery, TaskMeeting, TaskOther:
		return true
	}
	return false
}

// TaskPriority enumerates task priorities.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TaskStatus enumerates task lifecycle states.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Task represents a unit of assigned work.
type Task struct {
	ID             int64        `db:"id" json:"id"`
	Title          string       `db:"title" json:"title"`
	Description    string       `db:"description" json:"description"`
	Type           TaskType     `db:"type" json:"type"`
	Priority       TaskPriority `db:"priority" json:"priority"`
	Status         TaskStatus   `db:"status" json:"status"`
	AssignedTo     *int64       `db:"assigned_to" json:"assignedTo,omitempty"`
	CreatedBy      int64        `db:"created_by" json:"createdBy"`
	DueDate        *time.Time   `db:"due_date" json:"dueDate,omitempty"`
	CompletedAt    *time.Time   `db:"completed_at" json:"completedAt,omitempty"`
	TargetQuantity *int         `db:"target_quantity" json:"targetQuantity,omitempty"`
	ActualQuantity *int         `db:"actual_quantity" json:"actualQuantity,omitempty"`
	ProductID      *int64       `db:"product_id" json:"productId,omitempty"`
	Notes          string       `db:"notes" json:"notes"`
	CreatedAt      time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updatedAt"`

	// Joined fields (populated via JOIN)
	AssigneeName string `db:"assignee_name" json:"assigneeName,omitempty"`
	CreatorName  string `db:"creator_name" json:"creatorName,omitempty"`
}

// ApplyStatus transitions the task to the given status at the given time,
// setting or clearing completed_at and appending a timestamped note.
func (t *Task) ApplyStatus(status TaskStatus, note string, now time.Time) {
	t.Status = status
	if status == StatusCompleted {
		at := now
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	if note != "" {
		entry := fmt.Sprintf("[%s] %s", now.Format("2006-01-02 15:04"), note)
		if t.Notes == "" {
			t.Notes = entry
		} else {
			t.Notes = t.Notes + "\n" + entry
		}
	}
	t.UpdatedAt = now
}

// IsOverdue reports whether the task has a due date in the past and is not
// completed or cancelled.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == StatusCompleted || t.Status == StatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

// TaskFilter narrows task list queries.
type TaskFilter struct {
	Status     TaskStatus
	Priority   TaskPriority
	Type       TaskType
	AssignedTo int64
}
