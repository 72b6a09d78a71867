package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
)

// DashboardHandler handles dashboard and reporting endpoints.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Dashboard stats retrieved", stats)
}

// EmployeeOverview handles GET /v1/dashboard/employee (admin)
func (h *DashboardHandler) EmployeeOverview(c *gin.Context) {
	overview, err := h.dashboardService.EmployeeOverview(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Employee overview retrieved", overview)
}

// FinancialSummary handles GET /v1/dashboard/financial (admin)
func (h *DashboardHandler) FinancialSummary(c *gin.Context) {
	summary, err := h.dashboardService.FinancialSummary()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Financial summary retrieved", summary)
}

// CategoryBreakdown handles GET /v1/dashboard/categories
func (h *DashboardHandler) CategoryBreakdown(c *gin.Context) {
	rows, err := h.dashboardService.CategoryBreakdown()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Category breakdown retrieved", rows)
}

// TopByValue handles GET /v1/dashboard/top-by-value
func (h *DashboardHandler) TopByValue(c *gin.Context) {
	products, err := h.dashboardService.TopByValue()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Top products by value retrieved", products)
}

// MovementHistory handles GET /v1/dashboard/movements
func (h *DashboardHandler) MovementHistory(c *gin.Context) {
	var from, until time.Time
	if v := c.Query("from"); v != "" {
		from, _ = time.Parse("2006-01-02", v)
	}
	if v := c.Query("until"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err == nil {
			until = parsed.AddDate(0, 0, 1)
		}
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	movements, err := h.dashboardService.MovementHistory(c.Query("search"), c.Query("type"), from, until, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Movement history retrieved", movements)
}
