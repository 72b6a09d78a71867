package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/service"
	"github.com/easystock/easystock-api/internal/utils"
	"github.com/easystock/easystock-api/pkg/linemsg"
)

// WebhookHandler receives callbacks from the LINE platform.
type WebhookHandler struct {
	lineService   *service.LineService
	channelSecret string
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(lineService *service.LineService, channelSecret string) *WebhookHandler {
	return &WebhookHandler{
		lineService:   lineService,
		channelSecret: channelSecret,
	}
}

// HandleLine handles POST /v1/webhook/line. The signature is computed over
// the raw body, so it is read before any JSON decoding.
func (h *WebhookHandler) HandleLine(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Cannot read request body")
		return
	}

	signature := c.GetHeader("X-Line-Signature")
	if !linemsg.VerifySignature(body, signature, h.channelSecret) {
		log.Warn().
			Str("ip", c.ClientIP()).
			Msg("LINE webhook signature mismatch")
		utils.Error(c, 401, "INVALID_SIGNATURE", "Signature verification failed")
		return
	}

	var webhook linemsg.WebhookBody
	if err := json.Unmarshal(body, &webhook); err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "Invalid webhook payload")
		return
	}

	for i := range webhook.Events {
		h.lineService.HandleWebhookEvent(c.Request.Context(), &webhook.Events[i])
	}

	utils.Success(c, 200, "OK", nil)
}
