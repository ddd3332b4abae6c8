package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ignite-agency/website/api/internal/service"
)

// Messages returned for failures that must not leak internal detail.
const (
	msgInvalidPayload      = "invalid payload"
	msgValidationError     = "Validation error"
	msgInternalError       = "Internal server error"
	msgSheetsNotConfigured = "Google Sheets not configured"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Data    any                  `json:"data,omitempty"`
	Errors  []service.FieldError `json:"errors,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
	return c.JSON(status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := APIResponse{
		Success: false,
		Message: message,
	}
	return c.JSON(status, payload)
}

// ValidationFailed sends a 400 listing every violated field.
func ValidationFailed(c echo.Context, verr *service.ValidationError) error {
	return c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Message: msgValidationError,
		Errors:  verr.Issues,
	})
}
