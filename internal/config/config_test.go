package config

import (
	"testing"
	"time"
	_ "time/tzdata"
	"trip-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "  test-key  ")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GoogleMapsAPIKey)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 40, cfg.MaxOptionalCandidates)
	assert.Equal(t, 20, cfg.PlacesResultsPerKeyword)
	assert.Equal(t, 25, cfg.DefaultExportWaypointCap)
	assert.Equal(t, 15*time.Second, cfg.GoogleHTTPTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestValidateMissingCredential(t *testing.T) {
	cfg := Config{
		MaxOptionalCandidates:    40,
		PlacesResultsPerKeyword:  20,
		DefaultExportWaypointCap: 25,
	}

	assert.ErrorIs(t, cfg.Validate(), domain.ErrMissingCredential)
}

func TestValidateRanges(t *testing.T) {
	base := Config{
		GoogleMapsAPIKey:         "k",
		MaxOptionalCandidates:    40,
		PlacesResultsPerKeyword:  20,
		DefaultExportWaypointCap: 25,
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.MaxOptionalCandidates = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.PlacesResultsPerKeyword = 21
	assert.Error(t, bad.Validate())

	bad = base
	bad.DefaultExportWaypointCap = 26
	assert.Error(t, bad.Validate())

	bad = base
	bad.TimeZone = "Not/AZone"
	assert.Error(t, bad.Validate())
}

func TestLocation(t *testing.T) {
	loc, err := Config{TimeZone: "Local"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = Config{TimeZone: "America/Phoenix"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Phoenix", loc.String())
}

func TestLoadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}
