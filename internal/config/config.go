package config

import (
	"fmt"
	"strings"
	"time"
	"trip-planner-service/internal/domain"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Process-wide settings, read once at startup and passed down explicitly.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	GoogleMapsAPIKey     string        `env:"GOOGLE_MAPS_API_KEY"`
	GoogleRoutesBaseURL  string        `env:"GOOGLE_ROUTES_BASE_URL" envDefault:"https://routes.googleapis.com"`
	GooglePlacesBaseURL  string        `env:"GOOGLE_PLACES_BASE_URL" envDefault:"https://places.googleapis.com"`
	GoogleHTTPTimeout    time.Duration `env:"GOOGLE_HTTP_TIMEOUT" envDefault:"15s"`
	GoogleRateLimitRPS   float64       `env:"GOOGLE_RATE_LIMIT_RPS" envDefault:"10"`
	GoogleRateLimitBurst int           `env:"GOOGLE_RATE_LIMIT_BURST" envDefault:"10"`

	TimeZone                 string `env:"TRIP_TIMEZONE" envDefault:"Local"`
	MaxOptionalCandidates    int    `env:"TRIP_MAX_OPTIONAL_CANDIDATES" envDefault:"40"`
	PlacesResultsPerKeyword  int    `env:"TRIP_PLACES_PER_KEYWORD" envDefault:"20"`
	DefaultExportWaypointCap int    `env:"TRIP_DEFAULT_EXPORT_WAYPOINTS" envDefault:"25"`

	DatabaseURL string `env:"DATABASE_URL"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file and parses the environment into Config.
// A missing .env file is not an error.
func Load() (Config, bool, error) {
	loadedDotEnv := godotenv.Load() == nil

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, loadedDotEnv, fmt.Errorf("load config: parse environment: %w", err)
	}

	cfg.GoogleMapsAPIKey = strings.TrimSpace(cfg.GoogleMapsAPIKey)
	return cfg, loadedDotEnv, nil
}

// Validate reports settings that make the service unusable.
func (c Config) Validate() error {
	if c.GoogleMapsAPIKey == "" {
		return domain.ErrMissingCredential
	}

	if c.MaxOptionalCandidates < 1 {
		return fmt.Errorf("validate config: TRIP_MAX_OPTIONAL_CANDIDATES must be positive, got %d", c.MaxOptionalCandidates)
	}

	if c.PlacesResultsPerKeyword < 1 || c.PlacesResultsPerKeyword > 20 {
		return fmt.Errorf("validate config: TRIP_PLACES_PER_KEYWORD must be between 1 and 20, got %d", c.PlacesResultsPerKeyword)
	}

	if c.DefaultExportWaypointCap < 1 || c.DefaultExportWaypointCap > 25 {
		return fmt.Errorf("validate config: TRIP_DEFAULT_EXPORT_WAYPOINTS must be between 1 and 25, got %d", c.DefaultExportWaypointCap)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location resolves TRIP_TIMEZONE; "Local" and "" mean the process time zone.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.TimeZone)
	if name == "" || name == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("validate config: TRIP_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}
