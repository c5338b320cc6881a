package mockmaps

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"trip-planner-service/internal/domain"

	"github.com/twpayne/go-polyline"
)

type MockLeg struct {
	From, To string
	Minutes  int
}

// MockRouteProvider answers route computations from a fixed leg table.
// Legs missing from the table take DefaultMinutes.
type MockRouteProvider struct {
	DefaultMinutes int
	// Reject any request with more intermediates than this; negative disables.
	MaxIntermediates int
	// Addresses the provider cannot route to.
	Unroutable map[string]bool
	// Known coordinates, used for leg endpoints and the encoded path.
	Coordinates map[string]domain.Coordinates

	mu    sync.Mutex
	legs  map[string]int
	calls []domain.RouteRequest
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]int, len(legs))
	for _, l := range legs {
		m[l.From+"|"+l.To] = l.Minutes
	}
	return &MockRouteProvider{
		DefaultMinutes:   10,
		MaxIntermediates: -1,
		Unroutable:       map[string]bool{},
		Coordinates:      map[string]domain.Coordinates{},
		legs:             m,
	}
}

func (p *MockRouteProvider) ComputeRoute(ctx context.Context, req domain.RouteRequest) (domain.Route, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, req)

	if err := ctx.Err(); err != nil {
		return domain.Route{}, err
	}

	if p.MaxIntermediates >= 0 && len(req.Intermediates) > p.MaxIntermediates {
		return domain.Route{}, &domain.RoutingError{
			Status: http.StatusBadRequest,
			Body:   fmt.Sprintf("too many intermediates: %d > %d", len(req.Intermediates), p.MaxIntermediates),
		}
	}

	addresses := make([]string, 0, 2+len(req.Intermediates))
	addresses = append(addresses, req.Origin)
	addresses = append(addresses, req.Intermediates...)
	addresses = append(addresses, req.Destination)

	for _, a := range addresses {
		if p.Unroutable[a] {
			return domain.Route{}, &domain.RoutingError{
				Status: http.StatusBadRequest,
				Body:   fmt.Sprintf("address not routable: %q", a),
			}
		}
	}

	route := domain.Route{
		LegDriveMinutes: make([]int, 0, len(addresses)-1),
		LegLocations:    make([]domain.LegLocation, 0, len(addresses)-1),
	}

	path := make([][]float64, 0, len(addresses))
	for i := 0; i < len(addresses)-1; i++ {
		minutes, ok := p.legs[addresses[i]+"|"+addresses[i+1]]
		if !ok {
			minutes = p.DefaultMinutes
		}
		route.LegDriveMinutes = append(route.LegDriveMinutes, minutes)
		route.TotalDriveMinutes += minutes
		route.LegLocations = append(route.LegLocations, domain.LegLocation{
			Start: p.lookup(addresses[i]),
			End:   p.lookup(addresses[i+1]),
		})
	}

	for _, a := range addresses {
		if c := p.lookup(a); c != nil {
			path = append(path, c.LatLngPair())
		}
	}
	if len(path) >= 2 {
		route.EncodedPath = string(polyline.EncodeCoords(path))
	}

	return route, nil
}

func (p *MockRouteProvider) lookup(address string) *domain.Coordinates {
	c, ok := p.Coordinates[address]
	if !ok {
		return nil
	}
	return &c
}

// Calls returns a copy of every request received, in order.
func (p *MockRouteProvider) Calls() []domain.RouteRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.RouteRequest, len(p.calls))
	copy(out, p.calls)
	return out
}
