package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easystock/easystock-api/internal/middleware"
	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
)

// TaskHandler handles work task endpoints.
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler constructs a TaskHandler.
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List handles GET /v1/tasks. Employees see their own and self-created
// tasks only.
func (h *TaskHandler) List(c *gin.Context) {
	filter := &models.TaskFilter{
		Status:   models.TaskStatus(c.Query("status")),
		Priority: models.TaskPriority(c.Query("priority")),
		Type:     models.TaskType(c.Query("type")),
	}
	filter.AssignedTo, _ = strconv.ParseInt(c.Query("assigned_to"), 10, 64)

	tasks, err := h.taskService.List(filter, middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Tasks retrieved", tasks)
}

// Get handles GET /v1/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid task id")
		return
	}

	t, err := h.taskService.Get(id, middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Task retrieved", t)
}

// My handles GET /v1/tasks/my. Returns the caller's tasks grouped by status.
func (h *TaskHandler) My(c *gin.Context) {
	grouped, err := h.taskService.My(middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "My tasks retrieved", grouped)
}

// Urgent handles GET /v1/tasks/urgent
func (h *TaskHandler) Urgent(c *gin.Context) {
	tasks, err := h.taskService.Urgent(middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Urgent tasks retrieved", tasks)
}

type taskRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Type           string  `json:"type"`
	Priority       string  `json:"priority"`
	AssignedTo     *int64  `json:"assignedTo"`
	DueDate        *string `json:"dueDate"`
	TargetQuantity *int    `json:"targetQuantity"`
	ProductID      *int64  `json:"productId"`
	Notes          string  `json:"notes"`
}

// Create handles POST /v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t := &models.Task{
		Title:          req.Title,
		Description:    req.Description,
		Type:           models.TaskType(req.Type),
		Priority:       models.TaskPriority(req.Priority),
		AssignedTo:     req.AssignedTo,
		TargetQuantity: req.TargetQuantity,
		ProductID:      req.ProductID,
		Notes:          req.Notes,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			utils.Error(c, 400, "VALIDATION_ERROR", "dueDate must be in YYYY-MM-DD format")
			return
		}
		t.DueDate = &due
	}

	if err := h.taskService.Create(t, middleware.UserID(c)); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Task created", t)
}

type taskUpdateRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Type           *string `json:"type"`
	Priority       *string `json:"priority"`
	AssignedTo     *int64  `json:"assignedTo"`
	DueDate        *string `json:"dueDate"`
	TargetQuantity *int    `json:"targetQuantity"`
	ProductID      *int64  `json:"productId"`
	Notes          *string `json:"notes"`
}

// Update handles PATCH /v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid task id")
		return
	}

	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.taskService.Update(id, middleware.UserID(c), middleware.IsAdmin(c), func(t *models.Task) error {
		if req.Title != nil {
			t.Title = *req.Title
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Type != nil {
			t.Type = models.TaskType(*req.Type)
		}
		if req.Priority != nil {
			t.Priority = models.TaskPriority(*req.Priority)
		}
		if req.AssignedTo != nil {
			t.AssignedTo = req.AssignedTo
		}
		if req.DueDate != nil {
			if *req.DueDate == "" {
				t.DueDate = nil
			} else {
				due, err := time.Parse("2006-01-02", *req.DueDate)
				if err != nil {
					return err
				}
				t.DueDate = &due
			}
		}
		if req.TargetQuantity != nil {
			t.TargetQuantity = req.TargetQuantity
		}
		if req.ProductID != nil {
			t.ProductID = req.ProductID
		}
		if req.Notes != nil {
			t.Notes = *req.Notes
		}
		return nil
	})
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Task updated", t)
}

// Start handles POST /v1/tasks/:id/start
func (h *TaskHandler) Start(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid task id")
		return
	}

	t, err := h.taskService.Start(id, middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Task started", t)
}

type taskCompleteRequest struct {
	ActualQuantity *int `json:"actualQuantity"`
}

// Complete handles POST /v1/tasks/:id/complete
func (h *TaskHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid task id")
		return
	}

	var req taskCompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}

	t, err := h.taskService.Complete(id, middleware.UserID(c), middleware.IsAdmin(c), req.ActualQuantity)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Task completed", t)
}

type taskStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// UpdateStatus handles POST /v1/tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid task id")
		return
	}

	var req taskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.taskService.UpdateStatus(id, middleware.UserID(c), middleware.IsAdmin(c), models.TaskStatus(req.Status), req.Note)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Task status updated", t)
}

// Delete handles DELETE /v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid task id")
		return
	}

	if err := h.taskService.Delete(id, middleware.UserID(c), middleware.IsAdmin(c)); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Task deleted", nil)
}
