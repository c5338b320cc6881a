package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Contract for computing a drivable route through an ordered list of addresses.
type RouteProvider interface {
	// Return leg-by-leg drive minutes, the encoded path and leg endpoints.
	// A rejected computation is reported as *domain.RoutingError.
	ComputeRoute(ctx context.Context, req domain.RouteRequest) (domain.Route, error)
}
