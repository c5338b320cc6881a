package api

import (
	"net/http"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/platform/metrics"
	"trip-planner-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Planner                    handlers.TripPlanner
	Places                     ports.PlacesProvider
	CredentialConfigured       bool
	DefaultExportWaypointLimit int
	// Optional; nil disables plan archiving.
	Archive   ports.PlanArchive
	NewPlanID func() string
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()

	planHandler := &handlers.TripPlannerHandler{
		Planner:                    deps.Planner,
		Archive:                    deps.Archive,
		NewPlanID:                  deps.NewPlanID,
		Validate:                   handlers.NewValidator(),
		Logger:                     logger,
		DefaultExportWaypointLimit: deps.DefaultExportWaypointLimit,
	}
	suggestHandler := &handlers.SuggestHandler{
		Places:               deps.Places,
		CredentialConfigured: deps.CredentialConfigured,
		Logger:               logger,
	}
	archiveHandler := &handlers.PlanArchiveHandler{
		Archive: deps.Archive,
		Logger:  logger,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/admin/trip-planner/plan", planHandler.Plan)
	mux.HandleFunc("/admin/trip-planner/suggest", suggestHandler.Suggest)
	mux.HandleFunc("/admin/trip-planner/plans/{id}", archiveHandler.Get)
	mux.HandleFunc("/admin/trip-planner/plans/{id}/csv", archiveHandler.CSV)

	if deps.Metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	return requestIDMiddleware(loggingMiddleware(logger, deps.Metrics, mux))
}
