package ports

import (
	"context"
	"trip-planner-service/internal/domain"
)

// Query for places along a route corridor.
type PlaceSearch struct {
	Query       string
	EncodedPath string
	MaxResults  int
}

// Contract for points-of-interest lookups.
type PlacesProvider interface {
	// Return well-formed candidates matching the query near the encoded path.
	SearchAlongRoute(ctx context.Context, search PlaceSearch) ([]domain.PlaceCandidate, error)
	// Return address suggestions for partial free text.
	Autocomplete(ctx context.Context, input string) ([]domain.PlaceSuggestion, error)
}
