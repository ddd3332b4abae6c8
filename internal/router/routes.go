package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ignite-agency/website/api/internal/config"
	"github.com/ignite-agency/website/api/internal/handler"
	middlewarepkg "github.com/ignite-agency/website/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Leads       *handler.LeadsHandler
	Submissions *handler.SubmissionsHandler
	Diagnostics *handler.SheetsDiagnosticsHandler
	Pages       *handler.PagesHandler
	Metrics     http.Handler
}

// Register wires all HTTP routes for the site.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	// Pre-routing so locale redirects are traced and logged too.
	e.Pre(middlewarepkg.RequestID(), middlewarepkg.Logging(), middlewarepkg.Locale())

	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	if handlers.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(handlers.Metrics))
	}

	// Both forms draw from one bucket.
	submitLimit := middlewarepkg.SubmitRateLimiter(cfg.RateLimitSubmit)
	e.POST("/api/contact", handlers.Leads.SubmitContact, submitLimit)
	e.POST("/api/contact/free-trial", handlers.Leads.SubmitFreeTrial, submitLimit)

	e.GET("/api/contact/submissions", handlers.Submissions.List)
	e.GET("/api/contact/export", handlers.Submissions.Export)
	e.POST("/api/contact/update-status", handlers.Submissions.UpdateStatus)

	if handlers.Diagnostics != nil {
		e.GET("/api/test-google-sheets", handlers.Diagnostics.Check)
	}

	if handlers.Pages != nil {
		e.GET("/:locale", handlers.Pages.Render)
		e.GET("/:locale/*", handlers.Pages.Render)
	}
}
