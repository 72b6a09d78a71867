package utils

import "errors"

// Common application errors used across services.
var (
	ErrValidation        = errors.New("VALIDATION_ERROR")
	ErrNotFound          = errors.New("NOT_FOUND")
	ErrProductNotFound   = errors.New("PRODUCT_NOT_FOUND")
	ErrInsufficientStock = errors.New("INSUFFICIENT_STOCK")
	ErrDuplicateCode     = errors.New("DUPLICATE_CODE")
	ErrDuplicateUsername = errors.New("DUPLICATE_USERNAME")
	ErrDuplicateEmail    = errors.New("DUPLICATE_EMAIL")
	ErrInvalidCredential = errors.New("INVALID_CREDENTIALS")
	ErrInvalidToken      = errors.New("INVALID_TOKEN")
	ErrUnauthorized      = errors.New("UNAUTHORIZED")
	ErrForbidden         = errors.New("FORBIDDEN")
	ErrLineUnavailable   = errors.New("LINE_UNAVAILABLE")
	ErrInvalidCode       = errors.New("INVALID_VERIFY_CODE")
	ErrUserNotFound      = errors.New("USER_NOT_FOUND")
	ErrTaskNotFound      = errors.New("TASK_NOT_FOUND")
)
