package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ignite-agency/website/api/internal/dto"
	middlewarepkg "github.com/ignite-agency/website/api/internal/middleware"
	"github.com/ignite-agency/website/api/internal/service"
)

// SubmissionsHandler exposes the dashboard endpoints backed by the spreadsheet.
type SubmissionsHandler struct {
	service    *service.SubmissionsService
	filePrefix string
	now        func() time.Time
}

// NewSubmissionsHandler creates a new handler instance. filePrefix names the
// exported CSV files.
func NewSubmissionsHandler(service *service.SubmissionsService, filePrefix string) *SubmissionsHandler {
	if filePrefix == "" {
		filePrefix = "ignite-submissions"
	}
	return &SubmissionsHandler{service: service, filePrefix: filePrefix, now: time.Now}
}

// List handles GET /api/contact/submissions requests.
func (h *SubmissionsHandler) List(c echo.Context) error {
	if !h.service.Configured() {
		return Error(c, http.StatusInternalServerError, msgSheetsNotConfigured)
	}

	ctx := c.Request().Context()
	var (
		data any
		err  error
	)
	switch strings.TrimSpace(c.QueryParam("type")) {
	case "contact":
		data, err = h.service.Contacts(ctx)
	case "free-trial":
		data, err = h.service.FreeTrials(ctx)
	case "stats":
		data, err = h.service.Stats(ctx)
	default:
		data, err = h.service.All(ctx)
	}
	if err != nil {
		return h.failure(c, "list submissions", err)
	}

	return Success(c, http.StatusOK, "", data)
}

// Export handles GET /api/contact/export requests.
func (h *SubmissionsHandler) Export(c echo.Context) error {
	if !h.service.Configured() {
		return Error(c, http.StatusInternalServerError, msgSheetsNotConfigured)
	}

	scope := strings.TrimSpace(c.QueryParam("type"))
	if scope == "" {
		scope = service.ExportAll
	}

	data, err := h.service.Export(c.Request().Context(), scope)
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			return Error(c, http.StatusInternalServerError, "No data to export")
		}
		return h.failure(c, "export submissions", err)
	}

	filename := fmt.Sprintf("%s-%s-%s.csv", h.filePrefix, scope, h.now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv", data)
}

// UpdateStatus handles POST /api/contact/update-status requests.
func (h *SubmissionsHandler) UpdateStatus(c echo.Context) error {
	var req dto.StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, msgInvalidPayload)
	}

	kind, rowIndex, status, err := service.ValidateStatusUpdate(req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return ValidationFailed(c, verr)
		}
		return Error(c, http.StatusBadRequest, msgInvalidPayload)
	}

	if !h.service.Configured() {
		return Error(c, http.StatusInternalServerError, msgSheetsNotConfigured)
	}

	result, err := h.service.UpdateStatus(c.Request().Context(), kind, rowIndex, status)
	if err != nil {
		return h.failure(c, "update status", err)
	}

	return Success(c, http.StatusOK, "Status updated successfully", result)
}

func (h *SubmissionsHandler) failure(c echo.Context, op string, err error) error {
	log.Printf("request_id=%s op=%q err=%v", middlewarepkg.RequestIDFromContext(c), op, err)
	if errors.Is(err, service.ErrSheetsNotConfigured) {
		return Error(c, http.StatusInternalServerError, msgSheetsNotConfigured)
	}
	return Error(c, http.StatusInternalServerError, msgInternalError)
}
