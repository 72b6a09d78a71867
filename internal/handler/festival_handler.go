package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
)

// FestivalHandler handles festival calendar endpoints.
type FestivalHandler struct {
	festivalService *service.FestivalService
}

// NewFestivalHandler constructs a FestivalHandler.
func NewFestivalHandler(festivalService *service.FestivalService) *FestivalHandler {
	return &FestivalHandler{festivalService: festivalService}
}

// List handles GET /v1/festivals
func (h *FestivalHandler) List(c *gin.Context) {
	festivals, err := h.festivalService.List()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Festivals retrieved", festivals)
}

// Get handles GET /v1/festivals/:id
func (h *FestivalHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid festival id")
		return
	}

	f, err := h.festivalService.Get(id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Festival retrieved", f)
}

type festivalRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsRecurring bool   `json:"isRecurring"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Notes       string `json:"notes"`
}

func (r *festivalRequest) toModel() (*models.Festival, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return nil, err
	}
	return &models.Festival{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   start,
		EndDate:     end,
		IsRecurring: r.IsRecurring,
		Category:    models.FestivalCategory(r.Category),
		Icon:        r.Icon,
		Color:       r.Color,
		Notes:       r.Notes,
	}, nil
}

// Create handles POST /v1/festivals (admin)
func (h *FestivalHandler) Create(c *gin.Context) {
	var req festivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	f, err := req.toModel()
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Dates must be in YYYY-MM-DD format")
		return
	}
	if err := h.festivalService.Create(f); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Festival created", f)
}

// Update handles PUT /v1/festivals/:id (admin)
func (h *FestivalHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid festival id")
		return
	}

	var req festivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	f, err := req.toModel()
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Dates must be in YYYY-MM-DD format")
		return
	}
	f.ID = id
	if err := h.festivalService.Update(f); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Festival updated", f)
}

// Delete handles DELETE /v1/festivals/:id (admin)
func (h *FestivalHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid festival id")
		return
	}

	if err := h.festivalService.Delete(id); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Festival deleted", nil)
}

// Upcoming handles GET /v1/festivals/upcoming
func (h *FestivalHandler) Upcoming(c *gin.Context) {
	festivals, err := h.festivalService.Upcoming()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Upcoming festivals retrieved", festivals)
}

// Calendar handles GET /v1/festivals/calendar?year=&month=
func (h *FestivalHandler) Calendar(c *gin.Context) {
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	festivals, err := h.festivalService.Calendar(year, month)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Festival calendar retrieved", festivals)
}

// BestSellers handles GET /v1/festivals/:id/best-sellers
func (h *FestivalHandler) BestSellers(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid festival id")
		return
	}

	f, rows, err := h.festivalService.BestSellers(id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Festival best sellers retrieved", gin.H{
		"festival":    f,
		"bestSellers": rows,
	})
}

// Seed handles POST /v1/festivals/seed (admin). Inserts the Thai festival
// set for the given year, skipping names that already exist.
func (h *FestivalHandler) Seed(c *gin.Context) {
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))

	created, err := h.festivalService.SeedThaiFestivals(year)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Festivals seeded", gin.H{"created": created})
}
