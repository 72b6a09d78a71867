package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationDays(t *testing.T) {
	f := &Festival{
		StartDate: time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 3, f.DurationDays())

	oneDay := &Festival{
		StartDate: time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 1, oneDay.DurationDays())
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 4, 1, 15, 30, 0, 0, time.UTC)
	f := &Festival{StartDate: time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 12, f.DaysUntil(now))

	started := &Festival{StartDate: time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, -2, started.DaysUntil(now))
}

func TestIsActiveOn(t *testing.T) {
	f := &Festival{
		StartDate: time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, f.IsActiveOn(time.Date(2026, 4, 13, 8, 0, 0, 0, time.UTC)))
	assert.True(t, f.IsActiveOn(time.Date(2026, 4, 15, 23, 0, 0, 0, time.UTC)))
	assert.False(t, f.IsActiveOn(time.Date(2026, 4, 12, 23, 59, 0, 0, time.UTC)))
	assert.False(t, f.IsActiveOn(time.Date(2026, 4, 16, 0, 0, 0, 0, time.UTC)))
}

func TestEventVisibility(t *testing.T) {
	shared := &CustomEvent{CreatedBy: 1, IsShared: true}
	private := &CustomEvent{CreatedBy: 1}

	assert.True(t, shared.VisibleTo(2, false))
	assert.False(t, private.VisibleTo(2, false))
	assert.True(t, private.VisibleTo(1, false))
	assert.True(t, private.VisibleTo(2, true))

	assert.False(t, shared.EditableBy(2, false))
	assert.True(t, shared.EditableBy(1, false))
	assert.True(t, shared.EditableBy(2, true))
}
