package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/utils"
)

// AuthService implements registration, login, and session lifecycle.
type AuthService struct {
	users *repository.UserRepository
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// Register validates the input and creates an account. The first admin is
// expected to be seeded; self-registration defaults to the employee role.
func (s *AuthService) Register(in *RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Username == "" || in.Email == "" {
		return nil, fmt.Errorf("username and email are required: %w", utils.ErrValidation)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", utils.ErrValidation)
	}

	role := models.Role(in.Role)
	if in.Role == "" {
		role = models.RoleEmployee
	}
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role: %w", utils.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("User registered")
	return u, nil
}

// Login authenticates by username or email and returns the user with a fresh
// token pair. The user is flipped online.
func (s *AuthService) Login(login, password string) (*models.User, *utils.TokenPair, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, nil, fmt.Errorf("login and password are required: %w", utils.ErrValidation)
	}

	u, err := s.users.GetByLogin(login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, utils.ErrInvalidCredential
		}
		return nil, nil, err
	}
	if !u.IsActive {
		return nil, nil, utils.ErrInvalidCredential
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, utils.ErrInvalidCredential
	}

	pair, err := utils.GenerateTokenPair(u.ID, u.Username, string(u.Role))
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.MarkLogin(u.ID); err != nil {
		log.Warn().Err(err).Int64("user_id", u.ID).Msg("Failed to mark login")
	}
	u.IsOnline = true
	return u, pair, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateRefreshJWT(refreshToken)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}

	// Re-read the user so revoked accounts cannot refresh.
	u, err := s.users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrInvalidToken
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, utils.ErrInvalidToken
	}

	return utils.GenerateTokenPair(u.ID, u.Username, string(u.Role))
}

// Logout flips the user offline. Tokens are stateless and simply expire.
func (s *AuthService) Logout(userID int64) error {
	return s.users.MarkOffline(userID)
}

// Heartbeat keeps the user marked online.
func (s *AuthService) Heartbeat(userID int64) error {
	return s.users.Heartbeat(userID)
}

// ChangePassword verifies the current password and replaces it.
func (s *AuthService) ChangePassword(userID int64, current, newPassword, confirm string) error {
	u, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrUserNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return fmt.Errorf("current password is incorrect: %w", utils.ErrValidation)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("new password must be at least 6 characters: %w", utils.ErrValidation)
	}
	if newPassword == current {
		return fmt.Errorf("new password must differ from the current one: %w", utils.ErrValidation)
	}
	if newPassword != confirm {
		return fmt.Errorf("password confirmation does not match: %w", utils.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(userID, string(hash))
}
