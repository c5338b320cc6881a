package services

import (
	"fmt"
	"math"
	"time"
	"trip-planner-service/internal/domain"
)

// ParseLocalDateTime combines a YYYY-MM-DD date and an HH:MM clock time
// into a wall-clock instant in loc.
func ParseLocalDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse local date time %q %q: %w", date, clock, err)
	}
	return t, nil
}

// WindowMinutes is the whole-minute span from start to end, never negative.
func WindowMinutes(start, end time.Time) int {
	m := int(math.Round(end.Sub(start).Minutes()))
	return max(0, m)
}

// BuildTimeline assigns arrival and departure times to stops in order.
// The first stop arrives at departAt. Leg i connects stop i to stop i+1;
// a missing leg counts as zero drive minutes.
func BuildTimeline(stops []domain.PlannedStop, legMinutes []int, departAt time.Time) []domain.TimedStop {
	timed := make([]domain.TimedStop, 0, len(stops))

	cursor := departAt
	for i, stop := range stops {
		if i > 0 && i-1 < len(legMinutes) {
			cursor = cursor.Add(time.Duration(legMinutes[i-1]) * time.Minute)
		}

		arrive := cursor
		cursor = cursor.Add(time.Duration(stop.ServiceMinutes) * time.Minute)

		timed = append(timed, domain.TimedStop{
			PlannedStop: stop,
			Order:       i + 1,
			ArriveAt:    arrive,
			DepartAt:    cursor,
		})
	}

	return timed
}

// FitsInWindow reports whether driving plus service time fits the window.
func FitsInWindow(driveMinutes, serviceMinutes, windowMinutes int) bool {
	return driveMinutes+serviceMinutes <= max(0, windowMinutes)
}
