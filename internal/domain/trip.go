package domain

import "time"

// Wall-clock timestamps are rendered with an explicit numeric offset.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

type StopType string

const (
	StopStart    StopType = "START"
	StopMust     StopType = "MUST"
	StopOptional StopType = "OPTIONAL"
	StopEnd      StopType = "END"
)

// A mandatory stop supplied by the caller.
type MustStop struct {
	Name           string
	Address        string
	ServiceMinutes int
}

// Planning input. Field constraints are enforced at the HTTP boundary,
// not by the planner.
type TripPlanRequest struct {
	StartAddress           string
	EndAddress             string
	RoundTrip              bool
	Date                   string // YYYY-MM-DD
	StartTime              string // HH:MM
	EndTime                string // HH:MM
	Location               *time.Location
	MustStops              []MustStop
	MaxOptionalStops       int
	OptionalServiceMinutes int
	Keywords               []string
	ExportWaypointLimit    int
}

// A stop in the assembled itinerary, before timing is applied.
type PlannedStop struct {
	Type           StopType
	Name           string
	Address        string
	Location       *Coordinates
	ServiceMinutes int
}

// A planned stop with its estimated arrival and departure.
type TimedStop struct {
	PlannedStop
	Order    int
	ArriveAt time.Time
	DepartAt time.Time
}

type TripSummary struct {
	TotalStops          int
	MustStops           int
	OptionalStops       int
	TotalDriveMinutes   int
	TotalServiceMinutes int
	FitsInWindow        bool
	Notes               []string
}

// A shareable driving-directions link covering a contiguous run of stops.
type MapsSegment struct {
	Label     string `json:"label"`
	URL       string `json:"url"`
	StopCount int    `json:"stopCount"`
}

// Planning output. Immutable once built.
type TripPlanResponse struct {
	Summary  TripSummary
	Stops    []TimedStop
	Segments []MapsSegment
	CSV      string
}
