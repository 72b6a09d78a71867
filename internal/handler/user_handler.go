package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/easystock/easystock-api/internal/middleware"
	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
)

// UserHandler handles admin user management endpoints.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /v1/users
func (h *UserHandler) List(c *gin.Context) {
	users, stats, err := h.userService.List()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Users retrieved", gin.H{
		"users": users,
		"stats": stats,
	})
}

// Get handles GET /v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "User retrieved", user)
}

// Update handles PATCH /v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	var req service.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "User updated", user)
}

// Delete handles DELETE /v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid user id")
		return
	}

	if err := h.userService.Delete(id, middleware.UserID(c)); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "User deleted", nil)
}
