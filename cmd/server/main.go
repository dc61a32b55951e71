package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"

	"fleet/internal/app"
	"fleet/internal/config"
	"fleet/internal/domain"
	"fleet/internal/handler"
	"fleet/internal/logger"
	"fleet/internal/repository/file"
	"fleet/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()
	logger.Setup(cfg.Logging.File)

	// Initialize New Relic when configured.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		var err error
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			logrus.WithError(err).Error("failed to initialize New Relic")
		} else {
			logrus.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	// Wire dependencies.
	server := wireServer(cfg, nrApp)

	// Start server in goroutine.
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(cfg *config.Config, nrApp *newrelic.Application) *http.Server {
	clock := domain.SystemClock{}

	// Initialize repositories.
	busRepo := file.NewBusRepository(cfg.Storage.DataDir, clock)
	driverRepo := file.NewDriverRepository(cfg.Storage.DataDir, clock)
	routeRepo := file.NewRouteRepository(cfg.Storage.DataDir, clock)
	tripRepo := file.NewTripRepository(cfg.Storage.DataDir, clock)

	// Initialize services.
	busService := service.NewBusService(busRepo, clock)
	driverService := service.NewDriverService(driverRepo, tripRepo)
	routeService := service.NewRouteService(routeRepo, tripRepo)
	tripService := service.NewTripService(tripRepo, driverRepo, routeRepo, clock, cfg.Trips.MaxTripsPerDriverPerDay)
	adminService := service.NewAdminService(cfg.Storage.BackupDir, busRepo, driverRepo, routeRepo, tripRepo)

	// Initialize handlers.
	busHandler := handler.NewBusHandler(busService, clock)
	driverHandler := handler.NewDriverHandler(driverService, clock)
	routeHandler := handler.NewRouteHandler(routeService)
	tripHandler := handler.NewTripHandler(tripService, clock)
	adminHandler := handler.NewAdminHandler(adminService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		BusHandler:    busHandler,
		DriverHandler: driverHandler,
		RouteHandler:  routeHandler,
		TripHandler:   tripHandler,
		AdminHandler:  adminHandler,
		NewRelicApp:   nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
