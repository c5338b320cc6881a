package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"trip-planner-service/internal/domain"
)

const routesFieldMask = "routes.duration,routes.legs.duration,routes.legs.startLocation," +
	"routes.legs.endLocation,routes.polyline.encodedPolyline"

type routeWaypoint struct {
	Address string `json:"address"`
}

type computeRoutesRequest struct {
	Origin            routeWaypoint   `json:"origin"`
	Destination       routeWaypoint   `json:"destination"`
	Intermediates     []routeWaypoint `json:"intermediates"`
	TravelMode        string          `json:"travelMode"`
	RoutingPreference string          `json:"routingPreference"`
	PolylineQuality   string          `json:"polylineQuality"`
	PolylineEncoding  string          `json:"polylineEncoding"`
	DepartureTime     string          `json:"departureTime,omitempty"`
}

type routeLocation struct {
	LatLng *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"latLng"`
}

type computeRoutesResponse struct {
	Routes []struct {
		Duration json.RawMessage `json:"duration"`
		Legs     []struct {
			Duration      json.RawMessage `json:"duration"`
			StartLocation *routeLocation  `json:"startLocation"`
			EndLocation   *routeLocation  `json:"endLocation"`
		} `json:"legs"`
		Polyline *struct {
			EncodedPolyline string `json:"encodedPolyline"`
		} `json:"polyline"`
	} `json:"routes"`
}

// ComputeRoute resolves an ordered list of addresses into a driving route
// using the Routes API (directions/v2:computeRoutes).
func (c *Client) ComputeRoute(ctx context.Context, req domain.RouteRequest) (_ domain.Route, err error) {
	defer c.timer.Time(ctx, "google.ComputeRoute")(&err)

	body := computeRoutesRequest{
		Origin:            routeWaypoint{Address: req.Origin},
		Destination:       routeWaypoint{Address: req.Destination},
		Intermediates:     make([]routeWaypoint, 0, len(req.Intermediates)),
		TravelMode:        "DRIVE",
		RoutingPreference: "TRAFFIC_AWARE",
		PolylineQuality:   "OVERVIEW",
		PolylineEncoding:  "ENCODED_POLYLINE",
	}
	for _, a := range req.Intermediates {
		body.Intermediates = append(body.Intermediates, routeWaypoint{Address: a})
	}
	if !req.DepartAt.IsZero() {
		body.DepartureTime = req.DepartAt.Format(domain.TimestampLayout)
	}

	var decoded computeRoutesResponse
	endpoint := c.routesBaseURL + "/directions/v2:computeRoutes"
	if err := c.postJSON(ctx, "routes", endpoint, routesFieldMask, body, &decoded); err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			return domain.Route{}, &domain.RoutingError{Status: he.Code, Body: he.Body}
		}
		return domain.Route{}, fmt.Errorf("compute route: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return domain.Route{}, &domain.RoutingError{Status: http.StatusOK, Body: "no routes returned"}
	}

	r := decoded.Routes[0]

	out := domain.Route{
		LegDriveMinutes: make([]int, 0, len(r.Legs)),
		LegLocations:    make([]domain.LegLocation, 0, len(r.Legs)),
	}
	if r.Polyline != nil {
		out.EncodedPath = r.Polyline.EncodedPolyline
	}

	for _, leg := range r.Legs {
		minutes := durationMinutes(leg.Duration)
		out.LegDriveMinutes = append(out.LegDriveMinutes, minutes)
		out.TotalDriveMinutes += minutes
		out.LegLocations = append(out.LegLocations, domain.LegLocation{
			Start: leg.StartLocation.coordinates(),
			End:   leg.EndLocation.coordinates(),
		})
	}

	// Single-leg degenerate routes may omit leg durations.
	if out.TotalDriveMinutes == 0 {
		out.TotalDriveMinutes = durationMinutes(r.Duration)
	}

	return out, nil
}

func (l *routeLocation) coordinates() *domain.Coordinates {
	if l == nil || l.LatLng == nil || l.LatLng.Latitude == nil || l.LatLng.Longitude == nil {
		return nil
	}
	return &domain.Coordinates{Lat: *l.LatLng.Latitude, Lng: *l.LatLng.Longitude}
}
