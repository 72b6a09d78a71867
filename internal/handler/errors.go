package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/utils"
)

// handleError maps service errors onto the response envelope. Sentinels may
// arrive wrapped with a detail message ("product 7 not found: NOT_FOUND");
// the detail is surfaced, the sentinel picks the status and error code.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrValidation):
		utils.Error(c, 400, "VALIDATION_ERROR", detail(err, utils.ErrValidation, "Invalid request"))
	case errors.Is(err, utils.ErrInsufficientStock):
		utils.Error(c, 400, "INSUFFICIENT_STOCK", detail(err, utils.ErrInsufficientStock, "Stock not enough"))
	case errors.Is(err, utils.ErrDuplicateCode):
		utils.Error(c, 400, "DUPLICATE_CODE", "Code already in use")
	case errors.Is(err, utils.ErrDuplicateUsername):
		utils.Error(c, 400, "DUPLICATE_USERNAME", "Username already in use")
	case errors.Is(err, utils.ErrDuplicateEmail):
		utils.Error(c, 400, "DUPLICATE_EMAIL", "Email already in use")
	case errors.Is(err, utils.ErrInvalidCredential):
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid username or password")
	case errors.Is(err, utils.ErrInvalidToken):
		utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
	case errors.Is(err, utils.ErrUnauthorized):
		utils.Error(c, 401, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, utils.ErrForbidden):
		utils.Error(c, 403, "FORBIDDEN", "Not allowed")
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "NOT_FOUND", detail(err, utils.ErrProductNotFound, "Product not found"))
	case errors.Is(err, utils.ErrUserNotFound):
		utils.Error(c, 404, "NOT_FOUND", "User not found")
	case errors.Is(err, utils.ErrTaskNotFound):
		utils.Error(c, 404, "NOT_FOUND", "Task not found")
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, 404, "NOT_FOUND", detail(err, utils.ErrNotFound, "Resource not found"))
	case errors.Is(err, utils.ErrInvalidCode):
		utils.Error(c, 400, "INVALID_VERIFY_CODE", "Verification code is invalid or expired")
	case errors.Is(err, utils.ErrLineUnavailable):
		utils.Error(c, 503, "LINE_UNAVAILABLE", "LINE integration is not configured")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}

// detail strips the trailing sentinel from a wrapped error message.
func detail(err, sentinel error, fallback string) string {
	msg := strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
	if msg == "" || msg == sentinel.Error() {
		return fallback
	}
	return msg
}
