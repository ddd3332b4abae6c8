package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ignite-agency/website/api/internal/config"
	"github.com/ignite-agency/website/api/internal/dto"
	middlewarepkg "github.com/ignite-agency/website/api/internal/middleware"
	"github.com/ignite-agency/website/api/internal/service"
)

// SheetsDiagnosticsHandler checks the spreadsheet integration end to end.
type SheetsDiagnosticsHandler struct {
	service *service.SubmissionsService
	cfg     *config.Config
}

// NewSheetsDiagnosticsHandler creates a new handler instance.
func NewSheetsDiagnosticsHandler(service *service.SubmissionsService, cfg *config.Config) *SheetsDiagnosticsHandler {
	return &SheetsDiagnosticsHandler{service: service, cfg: cfg}
}

type sheetsDiagnosticsResponse struct {
	Success        bool                     `json:"success"`
	Message        string                   `json:"message"`
	MissingEnvVars []string                 `json:"missingEnvVars,omitempty"`
	Data           *dto.SheetsDiagnostics   `json:"data,omitempty"`
	Config         *dto.SheetsConfigSummary `json:"config,omitempty"`
}

// Check handles GET /api/test-google-sheets requests. Failures are reported
// in the body with a 200 status.
func (h *SheetsDiagnosticsHandler) Check(c echo.Context) error {
	if !h.cfg.SheetsEnabled() || !h.service.Configured() {
		return c.JSON(http.StatusOK, sheetsDiagnosticsResponse{
			Message:        msgSheetsNotConfigured,
			MissingEnvVars: h.cfg.MissingSheetsEnv(),
		})
	}

	ctx := c.Request().Context()
	rid := middlewarepkg.RequestIDFromContext(c)

	if err := h.service.InitializeSheets(ctx); err != nil {
		log.Printf("request_id=%s sheets diagnostics: initialize failed: %v", rid, err)
		return c.JSON(http.StatusOK, sheetsDiagnosticsResponse{Message: "Failed to initialize Google Sheets"})
	}

	stats, err := h.service.Stats(ctx)
	if err != nil {
		log.Printf("request_id=%s sheets diagnostics: read failed: %v", rid, err)
		return c.JSON(http.StatusOK, sheetsDiagnosticsResponse{Message: "Failed to read from Google Sheets"})
	}

	return c.JSON(http.StatusOK, sheetsDiagnosticsResponse{
		Success: true,
		Message: "Google Sheets integration is working correctly",
		Data: &dto.SheetsDiagnostics{
			TotalSubmissions: stats.TotalSubmissions,
			TotalContacts:    stats.TotalContacts,
			TotalFreeTrials:  stats.TotalFreeTrials,
			StatusBreakdown:  stats.StatusBreakdown,
		},
		Config: &dto.SheetsConfigSummary{
			SheetID:             h.cfg.Sheets.SpreadsheetID,
			ServiceAccountEmail: h.cfg.Sheets.ServiceAccountEmail,
			HasPrivateKey:       h.cfg.Sheets.PrivateKey != "",
			HasClientID:         h.cfg.Sheets.ClientID != "",
		},
	})
}
