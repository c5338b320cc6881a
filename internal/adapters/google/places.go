package google

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

const (
	placesFieldMask       = "places.id,places.displayName,places.formattedAddress,places.location"
	autocompleteFieldMask = "suggestions.placePrediction.placeId,suggestions.placePrediction.text"
)

type searchTextRequest struct {
	TextQuery                  string `json:"textQuery"`
	MaxResultCount             int    `json:"maxResultCount,omitempty"`
	SearchAlongRouteParameters struct {
		Polyline struct {
			EncodedPolyline string `json:"encodedPolyline"`
		} `json:"polyline"`
	} `json:"searchAlongRouteParameters"`
}

type searchTextResponse struct {
	Places []struct {
		ID          string `json:"id"`
		DisplayName *struct {
			Text string `json:"text"`
		} `json:"displayName"`
		FormattedAddress string `json:"formattedAddress"`
		Location         *struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"location"`
	} `json:"places"`
}

type autocompleteRequest struct {
	Input string `json:"input"`
}

type autocompleteResponse struct {
	Suggestions []struct {
		PlacePrediction *struct {
			PlaceID string `json:"placeId"`
			Text    *struct {
				Text string `json:"text"`
			} `json:"text"`
		} `json:"placePrediction"`
	} `json:"suggestions"`
}

// SearchAlongRoute runs a text search biased to the encoded route path
// (places:searchText). Results without an id, formatted address or
// numeric coordinates are dropped.
func (c *Client) SearchAlongRoute(
	ctx context.Context,
	search ports.PlaceSearch,
) (_ []domain.PlaceCandidate, err error) {
	defer c.timer.Time(ctx, "google.SearchAlongRoute")(&err)

	if strings.TrimSpace(search.Query) == "" {
		return nil, errors.New("search places: query must be non-empty")
	}

	body := searchTextRequest{
		TextQuery:      search.Query,
		MaxResultCount: search.MaxResults,
	}
	body.SearchAlongRouteParameters.Polyline.EncodedPolyline = search.EncodedPath

	var decoded searchTextResponse
	endpoint := c.placesBaseURL + "/v1/places:searchText"
	if err := c.postJSON(ctx, "places", endpoint, placesFieldMask, body, &decoded); err != nil {
		return nil, placesError("search places", err)
	}

	out := make([]domain.PlaceCandidate, 0, len(decoded.Places))
	for _, p := range decoded.Places {
		if p.ID == "" || p.FormattedAddress == "" {
			continue
		}
		if p.Location == nil || p.Location.Latitude == nil || p.Location.Longitude == nil {
			continue
		}

		name := ""
		if p.DisplayName != nil {
			name = p.DisplayName.Text
		}

		out = append(out, domain.PlaceCandidate{
			ID:      p.ID,
			Name:    name,
			Address: p.FormattedAddress,
			Location: domain.Coordinates{
				Lat: *p.Location.Latitude,
				Lng: *p.Location.Longitude,
			},
		})
	}

	return out, nil
}

// Autocomplete returns address suggestions for partial input (places:autocomplete).
func (c *Client) Autocomplete(ctx context.Context, input string) (_ []domain.PlaceSuggestion, err error) {
	defer c.timer.Time(ctx, "google.Autocomplete")(&err)

	var decoded autocompleteResponse
	endpoint := c.placesBaseURL + "/v1/places:autocomplete"
	body := autocompleteRequest{Input: input}
	if err := c.postJSON(ctx, "autocomplete", endpoint, autocompleteFieldMask, body, &decoded); err != nil {
		return nil, placesError("autocomplete places", err)
	}

	out := make([]domain.PlaceSuggestion, 0, len(decoded.Suggestions))
	for _, s := range decoded.Suggestions {
		p := s.PlacePrediction
		if p == nil || p.PlaceID == "" || p.Text == nil || p.Text.Text == "" {
			continue
		}
		out = append(out, domain.PlaceSuggestion{PlaceID: p.PlaceID, Text: p.Text.Text})
	}

	return out, nil
}

func placesError(op string, err error) error {
	var he *httpStatusError
	if errors.As(err, &he) {
		return fmt.Errorf("%s: places API error (%d): %s", op, he.Code, he.Body)
	}
	return fmt.Errorf("%s: %w", op, err)
}
