package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
)

// ListingHandler handles storefront listing endpoints.
type ListingHandler struct {
	listingService *service.ListingService
}

// NewListingHandler constructs a ListingHandler.
func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// List handles GET /v1/listings
func (h *ListingHandler) List(c *gin.Context) {
	filter := &models.ListingFilter{
		Search:          c.Query("search"),
		IncludeInactive: c.Query("active") == "0",
	}
	filter.CategoryID, _ = strconv.ParseInt(c.Query("category_id"), 10, 64)

	listings, err := h.listingService.List(filter)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Listings retrieved", listings)
}

// Get handles GET /v1/listings/:id
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid listing id")
		return
	}

	l, err := h.listingService.Get(id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Listing retrieved", l)
}

type listingUpdateRequest struct {
	DisplayTitle *string  `json:"displayTitle"`
	SalePrice    *float64 `json:"salePrice"`
	Unit         *string  `json:"unit"`
}

// Update handles PATCH /v1/listings/:id. Only display fields change here;
// quantity is owned by the issuance flow.
func (h *ListingHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid listing id")
		return
	}

	var req listingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.listingService.UpdateDisplay(id, req.DisplayTitle, req.SalePrice, req.Unit)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Listing updated", l)
}

// Unlist handles POST /v1/listings/:id/unlist
func (h *ListingHandler) Unlist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid listing id")
		return
	}

	l, err := h.listingService.Unlist(id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Listing unlisted", l)
}

// Delete handles DELETE /v1/listings/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid listing id")
		return
	}

	if err := h.listingService.Delete(id); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Listing deleted", nil)
}
