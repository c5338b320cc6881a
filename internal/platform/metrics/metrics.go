// Package metrics provides Prometheus metrics for the trip planner.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Outbound mapping provider calls, labelled by api and status code
	ProviderRequestsTotal *prometheus.CounterVec

	// Planning metrics
	PlansTotal             *prometheus.CounterVec
	OptionalStopsShedTotal prometheus.Counter
	DiscoveryFailuresTotal prometheus.Counter
	OperationDuration      *prometheus.HistogramVec
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_planner_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trip_planner_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	providerRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_planner_provider_requests_total",
			Help: "Outbound mapping provider requests by api and HTTP status",
		},
		[]string{"api", "status"},
	)

	plansTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_planner_plans_total",
			Help: "Planning requests by outcome",
		},
		[]string{"outcome"},
	)

	optionalStopsShedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trip_planner_optional_stops_shed_total",
		Help: "Optional stops dropped to satisfy routing limits",
	})

	discoveryFailuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trip_planner_discovery_failures_total",
		Help: "Optional stop discovery phases that failed and fell back to must stops only",
	})

	operationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trip_planner_operation_duration_seconds",
			Help:    "Duration of internal planning operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		providerRequestsTotal,
		plansTotal,
		optionalStopsShedTotal,
		discoveryFailuresTotal,
		operationDuration,
	)

	return &Metrics{
		Registry:               registry,
		HTTPRequestsTotal:      httpRequestsTotal,
		HTTPRequestDuration:    httpRequestDuration,
		ProviderRequestsTotal:  providerRequestsTotal,
		PlansTotal:             plansTotal,
		OptionalStopsShedTotal: optionalStopsShedTotal,
		DiscoveryFailuresTotal: discoveryFailuresTotal,
		OperationDuration:      operationDuration,
	}
}
