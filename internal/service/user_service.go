package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/utils"
)

// onlineIdleCutoff is how long a user may be silent before the admin list
// shows them offline.
const onlineIdleCutoff = 2 * time.Minute

// UserService implements admin-side account management.
type UserService struct {
	users *repository.UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List sweeps idle users offline, then returns all accounts with stats.
func (s *UserService) List() ([]models.User, *models.UserStats, error) {
	if swept, err := s.users.SweepIdle(onlineIdleCutoff); err != nil {
		log.Warn().Err(err).Msg("Idle sweep failed")
	} else if swept > 0 {
		log.Info().Int64("count", swept).Msg("Swept idle users offline")
	}

	users, err := s.users.GetAll()
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.users.Stats()
	if err != nil {
		return nil, nil, err
	}
	return users, stats, nil
}

// Get returns one user.
func (s *UserService) Get(id int64) (*models.User, error) {
	u, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateInput carries the editable account fields. Nil pointers leave the
// corresponding field untouched.
type UpdateInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"isActive"`
}

// Update edits an account.
func (s *UserService) Update(id int64, in *UpdateInput) (*models.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" {
			return nil, fmt.Errorf("email must not be empty: %w", utils.ErrValidation)
		}
		u.Email = email
	}
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Role != nil {
		role := models.Role(*in.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("invalid role: %w", utils.ErrValidation)
		}
		u.Role = role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes an account. Users cannot delete themselves.
func (s *UserService) Delete(id, actingUserID int64) error {
	if id == actingUserID {
		return fmt.Errorf("cannot delete your own account: %w", utils.ErrValidation)
	}
	err := s.users.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrUserNotFound
	}
	return err
}
