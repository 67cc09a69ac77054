package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/SAP-F-2025/driver-quiz-service/internal/analysis"
	"github.com/SAP-F-2025/driver-quiz-service/internal/auth"
	"github.com/SAP-F-2025/driver-quiz-service/internal/cache"
	"github.com/SAP-F-2025/driver-quiz-service/internal/config"
	"github.com/SAP-F-2025/driver-quiz-service/internal/handlers"
	"github.com/SAP-F-2025/driver-quiz-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/driver-quiz-service/internal/services"
	"github.com/SAP-F-2025/driver-quiz-service/internal/utils"
	"github.com/SAP-F-2025/driver-quiz-service/internal/validator"
	"github.com/SAP-F-2025/driver-quiz-service/pkg"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run wires the service and blocks until it stops. Errors are logged before they are returned.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().LogError(err, "Failed to load configuration")
		return err
	}

	logger := utils.NewLoggerForEnvironment(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Driver quiz service starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"report_timezone", cfg.Location().String(),
		"analytics_cache_ttl", cfg.AnalyticsCacheTTL.String(),
		"events_enabled", cfg.Events.Enabled)

	// Database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "Failed to initialize database")
		return err
	}
	if err := pkg.Migrate(db); err != nil {
		logger.LogError(err, "Failed to migrate database")
		return err
	}

	// Report cache; the service keeps working without Redis
	var reportCache cache.CacheService = cache.NoopCache{}
	if cfg.AnalyticsCacheTTL > 0 {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, analytics caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			reportCache = cache.NewRedisCache(redisClient, slogger)
		}
	}

	// Events
	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.LogError(err, "Failed to create event publisher")
		return err
	}

	engine := analysis.NewEngine(
		analysis.WithLocation(cfg.Location()),
		analysis.WithObserver(services.NewOrphanLogger(slogger)),
	)

	analyticsService := services.NewAnalyticsService(
		postgres.NewRepository(db),
		engine,
		reportCache,
		cfg.AnalyticsCacheTTL,
		publisher,
		slogger,
		validator.New(),
	)

	router := handlers.NewRouter(handlers.NewHandlerManager(analyticsService, auth.NewVerifier(cfg), logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(router)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	err = serve(httpServer, stop, logger)

	if closeErr := publisher.Close(); closeErr != nil {
		logger.LogError(closeErr, "Failed to close event publisher")
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		sqlDB.Close()
	}

	logger.Info("Driver quiz service stopped")
	return err
}

// serve runs srv until it fails or a signal arrives on stop, then shuts it down.
// It returns the server error, or nil when stopped by a signal.
func serve(srv *http.Server, stop <-chan os.Signal, logger utils.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	case runErr = <-serverErr:
		logger.LogError(runErr, "HTTP server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.LogError(err, "HTTP server shutdown error")
	}
	return runErr
}
