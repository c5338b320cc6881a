package google

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *prometheus.CounterVec) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_requests_total"}, []string{"api", "status"})
	c, err := NewClient(Options{
		APIKey:        "test-key",
		RoutesBaseURL: srv.URL,
		PlacesBaseURL: srv.URL,
		Timeout:       5 * time.Second,
		Requests:      requests,
	})
	require.NoError(t, err)
	return c, requests
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(Options{APIKey: "   "})
	assert.Error(t, err)
}

func TestComputeRoute(t *testing.T) {
	var got computeRoutesRequest
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/directions/v2:computeRoutes", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Equal(t, routesFieldMask, r.Header.Get("X-Goog-FieldMask"))

		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &got))

		_, _ = io.WriteString(w, `{"routes":[{
			"duration":"700s",
			"polyline":{"encodedPolyline":"_p~iF~ps|U_ulLnnqC"},
			"legs":[
				{"duration":"61s","startLocation":{"latLng":{"latitude":33.1,"longitude":-112.1}},"endLocation":{"latLng":{"latitude":33.2,"longitude":-112.2}}},
				{"duration":"120s","startLocation":{"latLng":{"latitude":33.2,"longitude":-112.2}},"endLocation":{"latLng":{"latitude":33.3}}}
			]}]}`)
	})

	loc := time.FixedZone("MST", -7*3600)
	depart := time.Date(2025, 6, 1, 8, 0, 0, 0, loc)

	route, err := c.ComputeRoute(context.Background(), domain.RouteRequest{
		Origin:        "A",
		Destination:   "B",
		Intermediates: []string{"C"},
		DepartAt:      depart,
	})
	require.NoError(t, err)

	assert.Equal(t, "A", got.Origin.Address)
	assert.Equal(t, "B", got.Destination.Address)
	assert.Equal(t, []routeWaypoint{{Address: "C"}}, got.Intermediates)
	assert.Equal(t, "DRIVE", got.TravelMode)
	assert.Equal(t, "2025-06-01T08:00:00-07:00", got.DepartureTime)

	assert.Equal(t, "_p~iF~ps|U_ulLnnqC", route.EncodedPath)
	assert.Equal(t, []int{2, 2}, route.LegDriveMinutes)
	assert.Equal(t, 4, route.TotalDriveMinutes)
	require.Len(t, route.LegLocations, 2)
	assert.Equal(t, &domain.Coordinates{Lat: 33.1, Lng: -112.1}, route.LegLocations[0].Start)
	assert.Nil(t, route.LegLocations[1].End, "partial coordinates are dropped")

	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("routes", "200")))
}

func TestComputeRouteFallsBackToRouteDuration(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"routes":[{"duration":{"seconds":"301"}}]}`)
	})

	route, err := c.ComputeRoute(context.Background(), domain.RouteRequest{Origin: "A", Destination: "B"})
	require.NoError(t, err)
	assert.Empty(t, route.LegDriveMinutes)
	assert.Equal(t, 6, route.TotalDriveMinutes)
	assert.Equal(t, "", route.EncodedPath)
}

func TestComputeRouteRejected(t *testing.T) {
	c, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"Too many intermediates"}}`)
	})

	_, err := c.ComputeRoute(context.Background(), domain.RouteRequest{Origin: "A", Destination: "B"})
	require.Error(t, err)

	var re *domain.RoutingError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusBadRequest, re.Status)
	assert.Contains(t, re.Body, "Too many intermediates")
	assert.Contains(t, err.Error(), "(400)")
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("routes", "400")))
}

func TestComputeRouteNoRoutes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	_, err := c.ComputeRoute(context.Background(), domain.RouteRequest{Origin: "A", Destination: "B"})

	var re *domain.RoutingError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, re.Body, "no routes")
}

func TestSearchAlongRouteDropsMalformed(t *testing.T) {
	var got searchTextRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/places:searchText", r.URL.Path)
		assert.Equal(t, placesFieldMask, r.Header.Get("X-Goog-FieldMask"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = io.WriteString(w, `{"places":[
			{"id":"p1","displayName":{"text":"Hemp Co"},"formattedAddress":"1 Main St","location":{"latitude":33.1,"longitude":-112.1}},
			{"id":"","formattedAddress":"2 Main St","location":{"latitude":33.1,"longitude":-112.1}},
			{"id":"p3","formattedAddress":"","location":{"latitude":33.1,"longitude":-112.1}},
			{"id":"p4","formattedAddress":"4 Main St","location":{"latitude":33.1}},
			{"id":"p5","formattedAddress":"5 Main St"},
			{"id":"p6","formattedAddress":"6 Main St","location":{"latitude":0,"longitude":0}}
		]}`)
	})

	candidates, err := c.SearchAlongRoute(context.Background(), ports.PlaceSearch{
		Query:       "CBD store",
		EncodedPath: "abc",
		MaxResults:  20,
	})
	require.NoError(t, err)

	assert.Equal(t, "CBD store", got.TextQuery)
	assert.Equal(t, 20, got.MaxResultCount)
	assert.Equal(t, "abc", got.SearchAlongRouteParameters.Polyline.EncodedPolyline)

	require.Len(t, candidates, 2)
	assert.Equal(t, domain.PlaceCandidate{
		ID:       "p1",
		Name:     "Hemp Co",
		Address:  "1 Main St",
		Location: domain.Coordinates{Lat: 33.1, Lng: -112.1},
	}, candidates[0])
	assert.Equal(t, "p6", candidates[1].ID, "zero coordinates are still numeric")
}

func TestSearchAlongRouteRejected(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, "key not authorized")
	})

	_, err := c.SearchAlongRoute(context.Background(), ports.PlaceSearch{Query: "x", EncodedPath: "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "places API error (403): key not authorized")
}

func TestSearchAlongRouteEmptyQuery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := c.SearchAlongRoute(context.Background(), ports.PlaceSearch{Query: "  "})
	assert.Error(t, err)
}

func TestAutocomplete(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/places:autocomplete", r.URL.Path)
		assert.Equal(t, autocompleteFieldMask, r.Header.Get("X-Goog-FieldMask"))

		var body autocompleteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1901 W Mad", body.Input)

		_, _ = io.WriteString(w, `{"suggestions":[
			{"placePrediction":{"placeId":"a","text":{"text":"1901 W Madison St, Phoenix, AZ"}}},
			{"placePrediction":{"placeId":"","text":{"text":"nameless"}}},
			{"placePrediction":{"placeId":"c"}},
			{}
		]}`)
	})

	got, err := c.Autocomplete(context.Background(), "1901 W Mad")
	require.NoError(t, err)
	assert.Equal(t, []domain.PlaceSuggestion{{PlaceID: "a", Text: "1901 W Madison St, Phoenix, AZ"}}, got)
}

func TestComputeRouteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_requests_total"}, []string{"api", "status"})
	c, err := NewClient(Options{
		APIKey:        "test-key",
		RoutesBaseURL: srv.URL,
		PlacesBaseURL: srv.URL,
		Timeout:       5 * time.Second,
		Requests:      requests,
	})
	require.NoError(t, err)

	_, err = c.ComputeRoute(context.Background(), domain.RouteRequest{Origin: "A", Destination: "B"})
	require.ErrorIs(t, err, domain.ErrProviderUnavailable)

	var re *domain.RoutingError
	assert.False(t, errors.As(err, &re))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("routes", "network_error")))
}
