package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/easystock/easystock-api/internal/middleware"
	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
)

// LineHandler handles LINE notification endpoints.
type LineHandler struct {
	lineService *service.LineService
}

// NewLineHandler constructs a LineHandler.
func NewLineHandler(lineService *service.LineService) *LineHandler {
	return &LineHandler{lineService: lineService}
}

// ConnectCode handles POST /v1/line/connect-code. Returns a short code the
// user sends to the bot in chat to link their account.
func (h *LineHandler) ConnectCode(c *gin.Context) {
	code, err := h.lineService.GenerateConnectCode(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Connect code generated", gin.H{"code": code})
}

// Status handles GET /v1/line/status
func (h *LineHandler) Status(c *gin.Context) {
	settings, err := h.lineService.Status(middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "LINE status retrieved", gin.H{
		"enabled":   h.lineService.Enabled(),
		"connected": settings.Connected(),
		"settings":  settings,
	})
}

// Disconnect handles POST /v1/line/disconnect
func (h *LineHandler) Disconnect(c *gin.Context) {
	if err := h.lineService.Disconnect(middleware.UserID(c)); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "LINE disconnected", nil)
}

// SendTest handles POST /v1/line/test
func (h *LineHandler) SendTest(c *gin.Context) {
	if err := h.lineService.SendTest(c.Request.Context(), middleware.UserID(c)); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Test message sent", nil)
}

// Profile handles GET /v1/line/profile
func (h *LineHandler) Profile(c *gin.Context) {
	profile, err := h.lineService.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "LINE profile retrieved", profile)
}

// ConnectedUsers handles GET /v1/line/connected-users (admin)
func (h *LineHandler) ConnectedUsers(c *gin.Context) {
	users, err := h.lineService.ConnectedUsers()
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Connected users retrieved", users)
}

type broadcastRequest struct {
	Message string `json:"message"`
}

// Broadcast handles POST /v1/line/broadcast (admin)
func (h *LineHandler) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		utils.Error(c, 400, "VALIDATION_ERROR", "message is required")
		return
	}

	if err := h.lineService.Broadcast(c.Request.Context(), req.Message); err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Broadcast sent", nil)
}

type sendToSelectedRequest struct {
	UserIDs []int64 `json:"userIds"`
	Message string  `json:"message"`
}

// SendToSelected handles POST /v1/line/send-to-selected (admin)
func (h *LineHandler) SendToSelected(c *gin.Context) {
	var req sendToSelectedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" || len(req.UserIDs) == 0 {
		utils.Error(c, 400, "VALIDATION_ERROR", "userIds and message are required")
		return
	}

	sent, err := h.lineService.SendToUsers(c.Request.Context(), req.UserIDs, req.Message)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Messages sent", gin.H{"sent": sent})
}

// LowStockSweep handles POST /v1/line/notify-low-stock (admin). Pushes a
// low stock summary to connected users immediately.
func (h *LineHandler) LowStockSweep(c *gin.Context) {
	count, err := h.lineService.LowStockSweep(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Low stock notification sent", gin.H{"lowStockCount": count})
}
