package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/utils"
)

// EventService implements custom calendar events with shared visibility.
type EventService struct {
	events *repository.EventRepository
}

// NewEventService constructs an EventService.
func NewEventService(events *repository.EventRepository) *EventService {
	return &EventService{events: events}
}

// List returns events visible to the user.
func (s *EventService) List(userID int64, isAdmin bool) ([]models.CustomEvent, error) {
	return s.events.GetVisible(userID, isAdmin)
}

// Get returns one event, enforcing visibility.
func (s *EventService) Get(id, userID int64, isAdmin bool) (*models.CustomEvent, error) {
	e, err := s.events.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event %d not found: %w", id, utils.ErrNotFound)
		}
		return nil, err
	}
	if !e.VisibleTo(userID, isAdmin) {
		return nil, utils.ErrForbidden
	}
	return e, nil
}

// Calendar returns visible events in the given month. Month must be 1-12.
func (s *EventService) Calendar(userID int64, isAdmin bool, year, month int) ([]models.CustomEvent, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12: %w", utils.ErrValidation)
	}
	return s.events.GetMonth(userID, isAdmin, year, time.Month(month))
}

// Upcoming returns visible events from today onward.
func (s *EventService) Upcoming(userID int64, isAdmin bool) ([]models.CustomEvent, error) {
	return s.events.GetUpcoming(userID, isAdmin, false, 20)
}

// UpcomingShared returns shared events only, for the common team calendar.
func (s *EventService) UpcomingShared() ([]models.CustomEvent, error) {
	return s.events.GetUpcoming(0, false, true, 20)
}

func (s *EventService) validate(e *models.CustomEvent) error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return fmt.Errorf("title is required: %w", utils.ErrValidation)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required: %w", utils.ErrValidation)
	}
	if e.Type == "" {
		e.Type = models.TaskOther
	}
	if !e.Type.Valid() {
		return fmt.Errorf("invalid type: %w", utils.ErrValidation)
	}
	if e.Priority == "" {
		e.Priority = models.PriorityMedium
	}
	if !e.Priority.Valid() {
		return fmt.Errorf("invalid priority: %w", utils.ErrValidation)
	}
	return nil
}

// Create inserts an event. Admin creations are shared automatically so the
// whole team sees planning entries.
func (s *EventService) Create(e *models.CustomEvent, createdBy int64, isAdmin bool) error {
	e.CreatedBy = createdBy
	if isAdmin {
		e.IsShared = true
	}
	if err := s.validate(e); err != nil {
		return err
	}
	return s.events.Create(e)
}

// Update edits an event; only the owner or an admin may.
func (s *EventService) Update(id, userID int64, isAdmin bool, apply func(e *models.CustomEvent) error) (*models.CustomEvent, error) {
	e, err := s.Get(id, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if !e.EditableBy(userID, isAdmin) {
		return nil, utils.ErrForbidden
	}
	if err := apply(e); err != nil {
		return nil, err
	}
	if err := s.validate(e); err != nil {
		return nil, err
	}
	if err := s.events.Update(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes an event; only the owner or an admin may.
func (s *EventService) Delete(id, userID int64, isAdmin bool) error {
	e, err := s.Get(id, userID, isAdmin)
	if err != nil {
		return err
	}
	if !e.EditableBy(userID, isAdmin) {
		return utils.ErrForbidden
	}
	return s.events.Delete(id)
}
