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
	_ "time/tzdata"
	"trip-planner-service/internal/adapters/google"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/logging"
	"trip-planner-service/internal/platform/metrics"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Google Maps, Postgres) behind ports and starts the HTTP server.
func main() {
	cfg, loadedDotEnv, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if !loadedDotEnv {
		logger.Info("no .env file found, using environment variables")
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	m := metrics.New()

	client, err := google.NewClient(google.Options{
		APIKey:        cfg.GoogleMapsAPIKey,
		RoutesBaseURL: cfg.GoogleRoutesBaseURL,
		PlacesBaseURL: cfg.GooglePlacesBaseURL,
		Timeout:       cfg.GoogleHTTPTimeout,
		RateLimit:     cfg.GoogleRateLimitRPS,
		Burst:         cfg.GoogleRateLimitBurst,
		Logger:        logger.Named("google"),
		Requests:      m.ProviderRequestsTotal,
		Timer:         obs.NewTimer(logger.Named("google"), m.OperationDuration),
	})
	if err != nil {
		logger.Fatal("create google client", zap.Error(err))
	}

	planner := services.NewTripPlanner(
		services.PlannerConfig{
			CredentialConfigured:       cfg.GoogleMapsAPIKey != "",
			MaxOptionalCandidates:      cfg.MaxOptionalCandidates,
			PlacesResultsPerKeyword:    cfg.PlacesResultsPerKeyword,
			DefaultExportWaypointLimit: cfg.DefaultExportWaypointCap,
			Location:                   loc,
		},
		client,
		client,
		logger.Named("planner"),
		m,
	)

	// The plan archive is optional; without DATABASE_URL plans are not kept.
	var archive ports.PlanArchive
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("open plan archive", zap.Error(err))
		}
		defer conn.Close()

		archive = repositories.NewPostgresPlanArchive(conn)
		logger.Info("plan archive enabled")
	}

	router := api.NewRouter(api.RouterDeps{
		Planner:                    planner,
		Places:                     client,
		CredentialConfigured:       cfg.GoogleMapsAPIKey != "",
		DefaultExportWaypointLimit: cfg.DefaultExportWaypointCap,
		Archive:                    archive,
		NewPlanID:                  repositories.NewPlanID,
		Logger:                     logger.Named("http"),
		Metrics:                    m,
	})

	// Timeouts cover a base route, discovery fan-out and several shedding attempts.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("server listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
