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

// EventHandler handles custom calendar event endpoints.
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /v1/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.List(middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Events retrieved", events)
}

// Get handles GET /v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid event id")
		return
	}

	e, err := h.eventService.Get(id, middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Event retrieved", e)
}

// Calendar handles GET /v1/events/calendar?year=&month=
func (h *EventHandler) Calendar(c *gin.Context) {
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	events, err := h.eventService.Calendar(middleware.UserID(c), middleware.IsAdmin(c), year, month)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Event calendar retrieved", events)
}

// Upcoming handles GET /v1/events/upcoming
func (h *EventHandler) Upcoming(c *gin.Context) {
	events, err := h.eventService.Upcoming(middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Upcoming events retrieved", events)
}

// UpcomingShared handles GET /v1/events/upcoming-shared. Shared events only,
// regardless of caller, for the common calendar widget.
func (h *EventHandler) UpcomingShared(c *gin.Context) {
	events, err := h.eventService.UpcomingShared()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Upcoming shared events retrieved", events)
}

type eventRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Notes    string `json:"notes"`
	IsShared bool   `json:"isShared"`
}

// Create handles POST /v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "date must be in YYYY-MM-DD format")
		return
	}

	e := &models.CustomEvent{
		Title:    req.Title,
		Date:     date,
		Type:     models.TaskType(req.Type),
		Priority: models.TaskPriority(req.Priority),
		Notes:    req.Notes,
		IsShared: req.IsShared,
	}
	if err := h.eventService.Create(e, middleware.UserID(c), middleware.IsAdmin(c)); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Event created", e)
}

type eventUpdateRequest struct {
	Title    *string `json:"title"`
	Date     *string `json:"date"`
	Type     *string `json:"type"`
	Priority *string `json:"priority"`
	Notes    *string `json:"notes"`
	IsShared *bool   `json:"isShared"`
}

// Update handles PATCH /v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid event id")
		return
	}

	var req eventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	e, err := h.eventService.Update(id, middleware.UserID(c), middleware.IsAdmin(c), func(e *models.CustomEvent) error {
		if req.Title != nil {
			e.Title = *req.Title
		}
		if req.Date != nil {
			date, err := time.Parse("2006-01-02", *req.Date)
			if err != nil {
				return err
			}
			e.Date = date
		}
		if req.Type != nil {
			e.Type = models.TaskType(*req.Type)
		}
		if req.Priority != nil {
			e.Priority = models.TaskPriority(*req.Priority)
		}
		if req.Notes != nil {
			e.Notes = *req.Notes
		}
		if req.IsShared != nil {
			e.IsShared = *req.IsShared
		}
		return nil
	})
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Event updated", e)
}

// Delete handles DELETE /v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid event id")
		return
	}

	if err := h.eventService.Delete(id, middleware.UserID(c), middleware.IsAdmin(c)); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Event deleted", nil)
}
