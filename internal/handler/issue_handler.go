package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/easystock/easystock-api/internal/middleware"
	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
)

// IssueHandler handles stock issuance endpoints.
type IssueHandler struct {
	issueService *service.IssueService
}

// NewIssueHandler constructs an IssueHandler.
func NewIssueHandler(issueService *service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

type issueRequest struct {
	Items []models.IssueItem `json:"items"`
}

// Issue handles POST /v1/issue-products. The whole batch runs in one
// transaction; any failing line aborts it.
func (h *IssueHandler) Issue(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := middleware.UserID(c)
	issuerName := c.GetString("username")

	products, err := h.issueService.IssueProducts(c.Request.Context(), req.Items, &userID, issuerName)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Products issued", products)
}
