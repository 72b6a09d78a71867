package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/easystock/easystock-api/internal/middleware"
	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
)

// ProductHandler handles product and category HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /v1/products
func (h *ProductHandler) List(c *gin.Context) {
	filter := &models.ProductFilter{
		Search:       c.Query("search"),
		CategoryName: c.Query("category"),
		ShowEmpty:    c.Query("show_empty") == "1" || c.Query("show_empty") == "true",
	}
	filter.CategoryID, _ = strconv.ParseInt(c.Query("category_id"), 10, 64)
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	products, total, err := h.productService.List(filter)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessWithPagination(c, 200, "Products retrieved", products, filter.Page, filter.Limit, total)
}

// Get handles GET /v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	p, err := h.productService.Get(id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Product retrieved", p)
}

type productRequest struct {
	Code       string  `json:"code"`
	Title      string  `json:"title"`
	CategoryID *int64  `json:"categoryId"`
	CostPrice  float64 `json:"costPrice"`
	SalePrice  float64 `json:"salePrice"`
	Unit       string  `json:"unit"`
	Stock      int     `json:"stock"`
}

// Create handles POST /v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p := &models.Product{
		Code:       req.Code,
		Title:      req.Title,
		CategoryID: req.CategoryID,
		CostPrice:  req.CostPrice,
		SalePrice:  req.SalePrice,
		Unit:       req.Unit,
		Stock:      req.Stock,
	}
	if err := h.productService.Create(c.Request.Context(), p, middleware.UserID(c), c.GetString("username")); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Product created", p)
}

type productUpdateRequest struct {
	Code       *string  `json:"code"`
	Title      *string  `json:"title"`
	CategoryID *int64   `json:"categoryId"`
	CostPrice  *float64 `json:"costPrice"`
	SalePrice  *float64 `json:"salePrice"`
	Unit       *string  `json:"unit"`
	Stock      *int     `json:"stock"`
	OnSale     *bool    `json:"onSale"`
}

// Update handles PATCH /v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.productService.Update(c.Request.Context(), id, func(p *models.Product) error {
		if req.Code != nil {
			p.Code = *req.Code
		}
		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.CategoryID != nil {
			p.CategoryID = req.CategoryID
		}
		if req.CostPrice != nil {
			p.CostPrice = *req.CostPrice
		}
		if req.SalePrice != nil {
			p.SalePrice = *req.SalePrice
		}
		if req.Unit != nil {
			p.Unit = *req.Unit
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
		}
		if req.OnSale != nil {
			p.OnSale = *req.OnSale
		}
		return nil
	}, c.GetString("username"))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Product updated", p)
}

// Delete handles DELETE /v1/products/:id. Product removal goes through the
// back office, not this API, so the method is refused.
func (h *ProductHandler) Delete(c *gin.Context) {
	utils.Error(c, 405, "METHOD_NOT_ALLOWED", "Products cannot be deleted through this API")
}

// Unlist handles POST /v1/products/:id/unlist
func (h *ProductHandler) Unlist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid product id")
		return
	}

	p, err := h.productService.Unlist(id)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Product unlisted", p)
}

// LowStock handles GET /v1/products/low-stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.LowStock()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Low stock products retrieved", products)
}

// --- Categories ---

// ListCategories handles GET /v1/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.Categories()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Categories retrieved", categories)
}

// CreateCategory handles POST /v1/categories
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat := &models.Category{Name: req.Name}
	if err := h.productService.CreateCategory(cat); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 201, "Category created", cat)
}

// UpdateCategory handles PATCH /v1/categories/:id
func (h *ProductHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid category id")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat := &models.Category{ID: id, Name: req.Name}
	if err := h.productService.UpdateCategory(cat); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Category updated", cat)
}

// DeleteCategory handles DELETE /v1/categories/:id
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid category id")
		return
	}

	if err := h.productService.DeleteCategory(id); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Category deleted", nil)
}
