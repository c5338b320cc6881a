package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMeters(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Coordinates
		expected  float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         Coordinates{Lat: 33.4484, Lng: -112.0740},
			b:         Coordinates{Lat: 33.4484, Lng: -112.0740},
			expected:  0,
			tolerance: 0.001,
		},
		{
			name:      "New York to Los Angeles",
			a:         Coordinates{Lat: 40.7128, Lng: -74.0060},
			b:         Coordinates{Lat: 34.0522, Lng: -118.2437},
			expected:  3935746,
			tolerance: 5000,
		},
		{
			name:      "roughly 22 meters north",
			a:         Coordinates{Lat: 33.4484, Lng: -112.0740},
			b:         Coordinates{Lat: 33.4486, Lng: -112.0740},
			expected:  22.2,
			tolerance: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMeters(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
			assert.InDelta(t, got, HaversineMeters(tt.b, tt.a), 1e-9, "distance must be symmetric")
		})
	}
}
