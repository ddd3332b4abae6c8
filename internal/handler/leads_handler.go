package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ignite-agency/website/api/internal/dto"
	"github.com/ignite-agency/website/api/internal/entity"
	middlewarepkg "github.com/ignite-agency/website/api/internal/middleware"
	"github.com/ignite-agency/website/api/internal/service"
)

// LeadsHandler exposes the lead capture endpoints.
type LeadsHandler struct {
	service *service.LeadsService
}

// NewLeadsHandler creates a new handler instance.
func NewLeadsHandler(service *service.LeadsService) *LeadsHandler {
	return &LeadsHandler{service: service}
}

// SubmitContact handles POST /api/contact requests.
func (h *LeadsHandler) SubmitContact(c echo.Context) error {
	return h.submit(c, entity.KindContact, "Contact form submitted successfully")
}

// SubmitFreeTrial handles POST /api/contact/free-trial requests.
func (h *LeadsHandler) SubmitFreeTrial(c echo.Context) error {
	return h.submit(c, entity.KindFreeTrial, "Free trial request submitted successfully")
}

func (h *LeadsHandler) submit(c echo.Context, kind entity.Kind, message string) error {
	var req dto.LeadRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, msgInvalidPayload)
	}

	lead, err := h.service.Submit(c.Request().Context(), kind, req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return ValidationFailed(c, verr)
		}
		log.Printf("request_id=%s kind=%s submit failed: %v", middlewarepkg.RequestIDFromContext(c), kind, err)
		return Error(c, http.StatusInternalServerError, msgInternalError)
	}

	return c.JSON(http.StatusCreated, dto.LeadCreatedResponse{
		Success: true,
		Message: message,
		ID:      lead.ID,
	})
}
