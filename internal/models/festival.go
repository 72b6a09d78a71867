package models

import "time"

// FestivalCategory enumerates festival categories.
type FestivalCategory string

const (
	FestivalNewYear  FestivalCategory = "new_year"
	FestivalSongkran FestivalCategory = "songkran"
	FestivalGeneric  FestivalCategory = "festival"
	FestivalHoliday  FestivalCategory = "holiday"
	FestivalSpecial  FestivalCategory = "special"
)

// Valid reports whether the category is one of the known values.
func (c FestivalCategory) Valid() bool {
	switch c {
	case FestivalNewYear, FestivalSongkran, FestivalGeneric, FestivalHoliday, FestivalSpecial:
		return true
	}
	return false
}

// Festival represents a sales-planning event on the calendar.
type Festival struct {
	ID          int64            `db:"id" json:"id"`
	Name        string           `db:"name" json:"name"`
	Description string           `db:"description" json:"description"`
	StartDate   time.Time        `db:"start_date" json:"startDate"`
	EndDate     time.Time        `db:"end_date" json:"endDate"`
	IsRecurring bool             `db:"is_recurring" json:"isRecurring"`
	Category    FestivalCategory `db:"category" json:"category"`
	Icon        string           `db:"icon" json:"icon"`
	Color       string           `db:"color" json:"color"`
	Notes       string           `db:"notes" json:"notes"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

// DurationDays returns the inclusive length of the festival in days.
func (f *Festival) DurationDays() int {
	return int(f.EndDate.Sub(f.StartDate).Hours()/24) + 1
}

// DaysUntil returns the number of days from now until the start date.
// Negative when the festival has already started.
func (f *Festival) DaysUntil(now time.Time) int {
	start := time.Date(f.StartDate.Year(), f.StartDate.Month(), f.StartDate.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(start.Sub(today).Hours() / 24)
}

// IsActiveOn reports whether the given day falls inside the festival window.
func (f *Festival) IsActiveOn(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	s := time.Date(f.StartDate.Year(), f.StartDate.Month(), f.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(f.EndDate.Year(), f.EndDate.Month(), f.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(s) && !d.After(e)
}
