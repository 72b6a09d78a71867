package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easystock/easystock-api/internal/utils"
)

func TestTopPeriod(t *testing.T) {
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)

	from, until, err := TopPeriod("all", now)
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.True(t, until.IsZero())

	from, _, err = TopPeriod("", now)
	require.NoError(t, err)
	assert.True(t, from.IsZero())

	from, _, err = TopPeriod("year", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), from)

	from, _, err = TopPeriod("month", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), from)

	from, _, err = TopPeriod("7days", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), from)

	from, _, err = TopPeriod("1days", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -1), from)
}

func TestTopPeriodUnknown(t *testing.T) {
	_, _, err := TopPeriod("decade", time.Now())
	assert.ErrorIs(t, err, utils.ErrValidation)
}
