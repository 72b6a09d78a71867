package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/easystock/easystock-api/internal/middleware"
	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
)

// AuthHandler handles registration, login, and session endpoints.
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
	loginLimit  *middleware.FailedLoginRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, userService *service.UserService, loginLimit *middleware.FailedLoginRateLimiter) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		loginLimit:  loginLimit,
	}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Account created", user)
}

type loginRequest struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth/login. Accepts username or email in either
// the login or username field.
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.loginLimit.Allow(c.ClientIP()) {
		utils.Error(c, 429, "RATE_LIMITED", "Too many login attempts, try again later")
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	login := req.Login
	if login == "" {
		login = req.Username
	}

	user, tokens, err := h.authService.Login(login, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	h.loginLimit.Clear(c.ClientIP())

	utils.Success(c, 200, "Login successful", gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"expiresIn":    tokens.ExpiresIn,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		utils.Error(c, 400, "VALIDATION_ERROR", "refreshToken is required")
		return
	}

	tokens, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Token refreshed", tokens)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(middleware.UserID(c)); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Logged out", nil)
}

// Heartbeat handles POST /v1/auth/heartbeat. Keeps the caller marked online.
func (h *AuthHandler) Heartbeat(c *gin.Context) {
	if err := h.authService.Heartbeat(middleware.UserID(c)); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "OK", nil)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.userService.Get(middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Profile retrieved", user)
}

type profileUpdateRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// UpdateMe handles PATCH /v1/auth/me. Role and active status can only be
// changed through the admin user endpoints.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.userService.Update(middleware.UserID(c), &service.UpdateInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Profile updated", user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePassword handles POST /v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.authService.ChangePassword(middleware.UserID(c), req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Password changed", nil)
}
