package export

import (
	"fmt"
	"net/url"
	"strings"
	"trip-planner-service/internal/domain"
)

const (
	mapsDirectionsURL = "https://www.google.com/maps/dir/"
	maxURLLength      = 2000
)

func directionsURL(origin, destination string, waypoints []string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("travelmode", "driving")
	if len(waypoints) > 0 {
		q.Set("waypoints", strings.Join(waypoints, "|"))
	}
	return mapsDirectionsURL + "?" + q.Encode()
}

// BuildMapsSegments splits an ordered address list into driving-directions
// links. Each segment holds at most waypointLimit waypoints between its
// origin and destination, and its URL stays within maxURLLength unless a
// single leg already exceeds it. Consecutive segments share their boundary
// stop.
func BuildMapsSegments(stops []string, waypointLimit int) []domain.MapsSegment {
	if len(stops) < 2 {
		return []domain.MapsSegment{}
	}
	if waypointLimit < 1 {
		waypointLimit = 1
	}

	last := len(stops) - 1
	segments := make([]domain.MapsSegment, 0, 1+last/(waypointLimit+1))

	cursor := 0
	for cursor < last {
		end := min(cursor+waypointLimit+1, last)

		link := directionsURL(stops[cursor], stops[end], stops[cursor+1:end])
		for len(link) > maxURLLength && end > cursor+1 {
			end--
			link = directionsURL(stops[cursor], stops[end], stops[cursor+1:end])
		}

		segments = append(segments, domain.MapsSegment{
			Label:     fmt.Sprintf("Segment %d", len(segments)+1),
			URL:       link,
			StopCount: end - cursor + 1,
		})
		cursor = end
	}

	return segments
}
