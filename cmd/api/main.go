package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignite-agency/website/api/internal/config"
	"github.com/ignite-agency/website/api/internal/database"
	"github.com/ignite-agency/website/api/internal/handler"
	"github.com/ignite-agency/website/api/internal/metrics"
	"github.com/ignite-agency/website/api/internal/notify"
	"github.com/ignite-agency/website/api/internal/repository"
	"github.com/ignite-agency/website/api/internal/router"
	"github.com/ignite-agency/website/api/internal/service"
	"github.com/ignite-agency/website/api/internal/sheets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The document store is optional: submissions still succeed without it.
	var leadsRepo repository.LeadsRepository
	switch {
	case cfg.MongoURI != "":
		provider := database.NewMongoProvider(cfg.MongoURI)
		defer func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			if err := provider.Close(closeCtx); err != nil {
				log.Printf("mongodb disconnect failed: %v", err)
			}
		}()
		leadsRepo = repository.NewMongoLeadsRepository(provider, cfg.MongoDatabase)
	case cfg.DatabaseURL != "":
		pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("postgres unavailable, continuing without document store: %v", err)
			break
		}
		defer pool.Close()
		leadsRepo = repository.NewPGXLeadsRepository(pool)
	default:
		log.Printf("no document store configured, leads will only be mirrored")
	}

	var sheetsClient service.SheetsClient
	if cfg.SheetsEnabled() {
		// The client keeps its context for token refreshes.
		client, err := sheets.NewClient(context.Background(), cfg.Sheets)
		if err != nil {
			log.Printf("google sheets disabled: %v", err)
		} else {
			sheetsClient = client
		}
	}
	ranges := service.SheetRanges{Contact: cfg.Sheets.ContactRange, FreeTrial: cfg.Sheets.FreeTrialRange}

	var sender notify.EmailSender
	switch {
	case cfg.SMTPEnabled():
		sender = notify.NewSMTPSender(cfg.SMTP)
	case cfg.SendGridEnabled():
		sender = notify.NewSendGridSender(cfg.SendGrid)
	}

	var mirrors []service.Mirror
	if sheetsClient != nil {
		mirrors = append(mirrors, service.NewSheetsMirror(sheetsClient, ranges))
	}
	if sender != nil {
		mirrors = append(mirrors, service.NewEmailMirror(sender, cfg.AdminEmail))
	}

	leadMetrics := metrics.NewLeadMetrics(prometheus.DefaultRegisterer)
	leadsService := service.NewLeadsService(
		service.NewLeadValidator(cfg.PhoneDefaultRegion),
		leadsRepo,
		service.WithMirrors(mirrors...),
		service.WithLeadMetrics(leadMetrics),
	)
	submissionsService := service.NewSubmissionsService(sheetsClient, ranges)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, router.Handlers{
		Leads:       handler.NewLeadsHandler(leadsService),
		Submissions: handler.NewSubmissionsHandler(submissionsService, cfg.ExportFilePrefix),
		Diagnostics: handler.NewSheetsDiagnosticsHandler(submissionsService, cfg),
		Pages:       handler.NewPagesHandler(),
		Metrics:     promhttp.Handler(),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
