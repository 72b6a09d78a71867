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

// TaskService implements work assignment. Employees only see tasks assigned
// to them or created by them; admins see everything.
type TaskService struct {
	tasks *repository.TaskRepository
}

// NewTaskService constructs a TaskService.
func NewTaskService(tasks *repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// scope returns the visibility restriction for a user: 0 means unrestricted.
func scope(userID int64, isAdmin bool) int64 {
	if isAdmin {
		return 0
	}
	return userID
}

// List returns tasks visible to the user, narrowed by the filter.
func (s *TaskService) List(filter *models.TaskFilter, userID int64, isAdmin bool) ([]models.Task, error) {
	return s.tasks.GetAll(filter, scope(userID, isAdmin))
}

// Get returns one task, enforcing visibility.
func (s *TaskService) Get(id, userID int64, isAdmin bool) (*models.Task, error) {
	t, err := s.tasks.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrTaskNotFound
		}
		return nil, err
	}
	if !isAdmin && t.CreatedBy != userID && (t.AssignedTo == nil || *t.AssignedTo != userID) {
		return nil, utils.ErrForbidden
	}
	return t, nil
}

// My returns the user's tasks grouped by status.
func (s *TaskService) My(userID int64) (map[models.TaskStatus][]models.Task, error) {
	tasks, err := s.tasks.GetAll(&models.TaskFilter{}, userID)
	if err != nil {
		return nil, err
	}

	grouped := map[models.TaskStatus][]models.Task{
		models.StatusPending:    {},
		models.StatusInProgress: {},
		models.StatusCompleted:  {},
		models.StatusCancelled:  {},
	}
	for _, t := range tasks {
		grouped[t.Status] = append(grouped[t.Status], t)
	}
	return grouped, nil
}

// Urgent returns open urgent/high tasks visible to the user.
func (s *TaskService) Urgent(userID int64, isAdmin bool) ([]models.Task, error) {
	return s.tasks.GetUrgent(scope(userID, isAdmin))
}

func (s *TaskService) validate(t *models.Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("title is required: %w", utils.ErrValidation)
	}
	if t.Type == "" {
		t.Type = models.TaskOther
	}
	if !t.Type.Valid() {
		return fmt.Errorf("invalid task type: %w", utils.ErrValidation)
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("invalid priority: %w", utils.ErrValidation)
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if !t.Status.Valid() {
		return fmt.Errorf("invalid status: %w", utils.ErrValidation)
	}
	return nil
}

// Create validates and inserts a task.
func (s *TaskService) Create(t *models.Task, createdBy int64) error {
	t.CreatedBy = createdBy
	if err := s.validate(t); err != nil {
		return err
	}
	return s.tasks.Create(t)
}

// Update edits a task's fields via apply, enforcing visibility.
func (s *TaskService) Update(id, userID int64, isAdmin bool, apply func(t *models.Task) error) (*models.Task, error) {
	t, err := s.Get(id, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if err := apply(t); err != nil {
		return nil, err
	}
	if err := s.validate(t); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Start moves a task to in_progress.
func (s *TaskService) Start(id, userID int64, isAdmin bool) (*models.Task, error) {
	return s.updateStatus(id, userID, isAdmin, models.StatusInProgress, "Started", nil)
}

// Complete moves a task to completed, recording the actual quantity when the
// task tracks one.
func (s *TaskService) Complete(id, userID int64, isAdmin bool, actualQuantity *int) (*models.Task, error) {
	return s.updateStatus(id, userID, isAdmin, models.StatusCompleted, "Completed", actualQuantity)
}

// UpdateStatus applies an arbitrary status with a note.
func (s *TaskService) UpdateStatus(id, userID int64, isAdmin bool, status models.TaskStatus, note string) (*models.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status: %w", utils.ErrValidation)
	}
	return s.updateStatus(id, userID, isAdmin, status, note, nil)
}

func (s *TaskService) updateStatus(id, userID int64, isAdmin bool, status models.TaskStatus, note string, actualQuantity *int) (*models.Task, error) {
	t, err := s.Get(id, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	if actualQuantity != nil {
		t.ActualQuantity = actualQuantity
	}
	t.ApplyStatus(status, note, time.Now())

	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a task; employees can only delete their own creations.
func (s *TaskService) Delete(id, userID int64, isAdmin bool) error {
	t, err := s.Get(id, userID, isAdmin)
	if err != nil {
		return err
	}
	if !isAdmin && t.CreatedBy != userID {
		return utils.ErrForbidden
	}
	return s.tasks.Delete(id)
}
