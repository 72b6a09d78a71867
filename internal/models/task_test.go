package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStatusCompleted(t *testing.T) {
	now := time.Date(2026, 4, 12, 14, 30, 0, 0, time.UTC)
	task := &Task{Status: StatusInProgress}

	task.ApplyStatus(StatusCompleted, "counted everything", now)

	assert.Equal(t, StatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
	assert.Equal(t, "[2026-04-12 14:30] counted everything", task.Notes)
	assert.Equal(t, now, task.UpdatedAt)
}

func TestApplyStatusReopenClearsCompletedAt(t *testing.T) {
	now := time.Now()
	done := now.Add(-time.Hour)
	task := &Task{Status: StatusCompleted, CompletedAt: &done}

	task.ApplyStatus(StatusInProgress, "", now)

	assert.Equal(t, StatusInProgress, task.Status)
	assert.Nil(t, task.CompletedAt)
	assert.Empty(t, task.Notes)
}

func TestApplyStatusAppendsNotes(t *testing.T) {
	now := time.Date(2026, 4, 12, 9, 0, 0, 0, time.UTC)
	task := &Task{Notes: "[2026-04-11 18:00] created"}

	task.ApplyStatus(StatusInProgress, "started", now)

	assert.Equal(t, "[2026-04-11 18:00] created\n[2026-04-12 09:00] started", task.Notes)
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.False(t, (&Task{}).IsOverdue(now))
	assert.True(t, (&Task{DueDate: &past, Status: StatusPending}).IsOverdue(now))
	assert.False(t, (&Task{DueDate: &future, Status: StatusPending}).IsOverdue(now))
	assert.False(t, (&Task{DueDate: &past, Status: StatusCompleted}).IsOverdue(now))
	assert.False(t, (&Task{DueDate: &past, Status: StatusCancelled}).IsOverdue(now))
}
