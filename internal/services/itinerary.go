package services

import (
	"context"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

const NoteOptionalStopDropped = "Dropped an optional stop to satisfy routing limits. Reduce optional stops if you want to keep all candidates."

type ItineraryInput struct {
	StartAddress string
	EndAddress   string
	MustStops    []domain.MustStop
	// Discovered candidates in preference order.
	Candidates             []domain.PlaceCandidate
	MaxOptionalStops       int
	OptionalServiceMinutes int
	DepartAt               time.Time
}

type Itinerary struct {
	Stops    []domain.PlannedStop
	Route    domain.Route
	Notes    []string
	Shed     int
	Attempts int
}

// AssembleItinerary orders START, must stops, selected optional stops and
// END, then routes them. When routing fails it drops the last optional stop
// and retries, one attempt at a time, until a route succeeds or no optional
// stops remain. A failure with no optional stops left is returned as is.
func AssembleItinerary(ctx context.Context, routes ports.RouteProvider, in ItineraryInput) (*Itinerary, error) {
	selected := in.Candidates[:min(max(in.MaxOptionalStops, 0), len(in.Candidates))]

	optional := make([]domain.PlannedStop, 0, len(selected))
	for _, c := range selected {
		loc := c.Location
		optional = append(optional, domain.PlannedStop{
			Type:           domain.StopOptional,
			Name:           c.Name,
			Address:        c.Address,
			Location:       &loc,
			ServiceMinutes: in.OptionalServiceMinutes,
		})
	}

	it := &Itinerary{}
	keep := len(optional)

	for {
		stops := buildStopList(in, optional[:keep])

		it.Attempts++
		route, err := routes.ComputeRoute(ctx, domain.RouteRequest{
			Origin:        in.StartAddress,
			Destination:   in.EndAddress,
			Intermediates: intermediateAddresses(stops),
			DepartAt:      in.DepartAt,
		})
		if err != nil {
			if keep == 0 {
				return nil, err
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			keep--
			it.Shed++
			it.Notes = append(it.Notes, NoteOptionalStopDropped)
			continue
		}

		fillLegLocations(stops, route.LegLocations)
		it.Stops = stops
		it.Route = route
		return it, nil
	}
}

func buildStopList(in ItineraryInput, optional []domain.PlannedStop) []domain.PlannedStop {
	stops := make([]domain.PlannedStop, 0, len(in.MustStops)+len(optional)+2)

	stops = append(stops, domain.PlannedStop{Type: domain.StopStart, Address: in.StartAddress})
	for _, m := range in.MustStops {
		stops = append(stops, domain.PlannedStop{
			Type:           domain.StopMust,
			Name:           m.Name,
			Address:        m.Address,
			ServiceMinutes: m.ServiceMinutes,
		})
	}
	stops = append(stops, optional...)
	stops = append(stops, domain.PlannedStop{Type: domain.StopEnd, Address: in.EndAddress})

	return stops
}

func intermediateAddresses(stops []domain.PlannedStop) []string {
	out := make([]string, 0, len(stops))
	for _, s := range stops[1 : len(stops)-1] {
		out = append(out, s.Address)
	}
	return out
}

// fillLegLocations gives coordinates to stops that lack them: stop i takes
// the start of leg i and the final stop takes the end of the last leg.
func fillLegLocations(stops []domain.PlannedStop, legs []domain.LegLocation) {
	for i := range stops {
		if stops[i].Location != nil {
			continue
		}

		var c *domain.Coordinates
		switch {
		case i < len(legs):
			c = legs[i].Start
		case i == len(stops)-1 && len(legs) > 0:
			c = legs[len(legs)-1].End
		}
		if c != nil {
			loc := *c
			stops[i].Location = &loc
		}
	}
}
