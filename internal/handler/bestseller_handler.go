package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
)

// BestSellerHandler handles best seller analytics endpoints.
type BestSellerHandler struct {
	bestSellerService *service.BestSellerService
}

// NewBestSellerHandler constructs a BestSellerHandler.
func NewBestSellerHandler(bestSellerService *service.BestSellerService) *BestSellerHandler {
	return &BestSellerHandler{bestSellerService: bestSellerService}
}

// List handles GET /v1/best-sellers
func (h *BestSellerHandler) List(c *gin.Context) {
	rows, err := h.bestSellerService.List()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Best sellers retrieved", rows)
}

// Get handles GET /v1/best-sellers/:id
func (h *BestSellerHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid best seller id")
		return
	}

	row, err := h.bestSellerService.Get(id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Best seller retrieved", row)
}

type bestSellerRequest struct {
	ProductID   int64 `json:"productId"`
	FestivalID  int64 `json:"festivalId"`
	TotalIssued int   `json:"totalIssued"`
	LastYearQty int   `json:"lastYearQty"`
	ThisYearQty int   `json:"thisYearQty"`
	Rank        int   `json:"rank"`
}

func (r *bestSellerRequest) toModel() *models.BestSeller {
	return &models.BestSeller{
		ProductID:   r.ProductID,
		FestivalID:  r.FestivalID,
		TotalIssued: r.TotalIssued,
		LastYearQty: r.LastYearQty,
		ThisYearQty: r.ThisYearQty,
		Rank:        r.Rank,
	}
}

// Upsert handles POST /v1/best-sellers (admin). One row per product and
// festival pair; posting again overwrites.
func (h *BestSellerHandler) Upsert(c *gin.Context) {
	var req bestSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	row := req.toModel()
	if err := h.bestSellerService.Upsert(row); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Best seller saved", row)
}

// BulkUpsert handles POST /v1/best-sellers/bulk (admin)
func (h *BestSellerHandler) BulkUpsert(c *gin.Context) {
	var reqs []bestSellerRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rows := make([]models.BestSeller, 0, len(reqs))
	for i := range reqs {
		rows = append(rows, *reqs[i].toModel())
	}
	saved, err := h.bestSellerService.BulkUpsert(rows)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Best sellers saved", gin.H{"saved": saved})
}

// Delete handles DELETE /v1/best-sellers/:id (admin)
func (h *BestSellerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid best seller id")
		return
	}

	if err := h.bestSellerService.Delete(id); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Best seller deleted", nil)
}

// TopProducts handles GET /v1/best-sellers/top-products
func (h *BestSellerHandler) TopProducts(c *gin.Context) {
	period := c.DefaultQuery("period", "all")
	minQty, err := strconv.Atoi(c.DefaultQuery("min_qty", "-1"))
	if err != nil {
		minQty = -1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	var from, until time.Time
	if period == "custom" {
		from, _ = time.Parse("2006-01-02", c.Query("from"))
		if v := c.Query("until"); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err == nil {
				until = parsed.AddDate(0, 0, 1)
			}
		}
	}

	rows, err := h.bestSellerService.TopProducts(period, from, until, minQty, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Top products retrieved", rows)
}

// FestivalForecast handles GET /v1/best-sellers/festival-forecast
func (h *BestSellerHandler) FestivalForecast(c *gin.Context) {
	forecast, err := h.bestSellerService.FestivalForecast()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Festival forecast retrieved", forecast)
}

// CategoryAnalysis handles GET /v1/best-sellers/category-analysis?festival_id=
func (h *BestSellerHandler) CategoryAnalysis(c *gin.Context) {
	festivalID, err := strconv.ParseInt(c.Query("festival_id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "festival_id is required")
		return
	}

	rows, err := h.bestSellerService.CategoryAnalysis(festivalID)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Category analysis retrieved", rows)
}
