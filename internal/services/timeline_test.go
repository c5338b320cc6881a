package services

import (
	"testing"
	"time"
	_ "time/tzdata"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDateTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	got, err := ParseLocalDateTime("2025-06-01", "08:00", loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T08:00:00-07:00", got.Format(domain.TimestampLayout))

	winter, err := ParseLocalDateTime("2025-01-15", "17:30", loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15T17:30:00-08:00", winter.Format(domain.TimestampLayout))

	_, err = ParseLocalDateTime("2025-13-01", "08:00", loc)
	assert.Error(t, err)
	_, err = ParseLocalDateTime("2025-06-01", "8am", loc)
	assert.Error(t, err)
}

func TestWindowMinutes(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 540, WindowMinutes(start, start.Add(9*time.Hour)))
	assert.Equal(t, 0, WindowMinutes(start, start))
	assert.Equal(t, 0, WindowMinutes(start, start.Add(-time.Hour)))
}

func TestFitsInWindow(t *testing.T) {
	tests := []struct {
		name           string
		drive, service int
		window         int
		want           bool
	}{
		{"under", 45, 30, 540, true},
		{"exact", 500, 40, 540, true},
		{"over", 500, 41, 540, false},
		{"negative window", 0, 0, -10, true},
		{"negative window with work", 1, 0, -10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FitsInWindow(tt.drive, tt.service, tt.window))
		})
	}
}

func TestBuildTimeline(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	depart := time.Date(2025, 6, 1, 8, 0, 0, 0, loc)

	stops := []domain.PlannedStop{
		{Type: domain.StopStart, Address: "A"},
		{Type: domain.StopMust, Address: "C", ServiceMinutes: 30},
		{Type: domain.StopOptional, Address: "D", ServiceMinutes: 15},
		{Type: domain.StopEnd, Address: "B"},
	}

	// The last leg is missing and counts as zero.
	timed := BuildTimeline(stops, []int{20, 10}, depart)
	require.Len(t, timed, 4)

	want := [][2]string{
		{"2025-06-01T08:00:00-07:00", "2025-06-01T08:00:00-07:00"},
		{"2025-06-01T08:20:00-07:00", "2025-06-01T08:50:00-07:00"},
		{"2025-06-01T09:00:00-07:00", "2025-06-01T09:15:00-07:00"},
		{"2025-06-01T09:15:00-07:00", "2025-06-01T09:15:00-07:00"},
	}
	for i, ts := range timed {
		assert.Equal(t, i+1, ts.Order)
		assert.Equal(t, stops[i].Address, ts.Address)
		assert.Equal(t, want[i][0], ts.ArriveAt.Format(domain.TimestampLayout), "eta %d", i)
		assert.Equal(t, want[i][1], ts.DepartAt.Format(domain.TimestampLayout), "depart %d", i)
	}
}

func TestBuildTimelineMonotonic(t *testing.T) {
	depart := time.Date(2025, 3, 9, 0, 30, 0, 0, time.UTC)

	stops := make([]domain.PlannedStop, 12)
	legs := make([]int, 11)
	for i := range stops {
		stops[i] = domain.PlannedStop{Address: string(rune('a' + i)), ServiceMinutes: (i * 7) % 40}
	}
	for i := range legs {
		legs[i] = (i * 13) % 90
	}

	timed := BuildTimeline(stops, legs, depart)
	for i, ts := range timed {
		assert.False(t, ts.DepartAt.Before(ts.ArriveAt), "stop %d departs before arriving", i)
		if i+1 < len(timed) {
			assert.False(t, timed[i+1].ArriveAt.Before(ts.DepartAt), "stop %d arrives before %d departs", i+1, i)
		}
	}
}
