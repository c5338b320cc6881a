package domain

import "time"

// Endpoints of a single route leg. Either side is nil when the provider
// did not return numeric coordinates for it.
type LegLocation struct {
	Start *Coordinates
	End   *Coordinates
}

// Drivable route for an ordered list of addresses.
// Leg i connects stop i to stop i+1.
type Route struct {
	EncodedPath       string
	LegDriveMinutes   []int
	TotalDriveMinutes int
	LegLocations      []LegLocation
}

// Input for a single route computation.
type RouteRequest struct {
	Origin        string
	Destination   string
	Intermediates []string
	DepartAt      time.Time
}
