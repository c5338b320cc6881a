package domain

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned before any provider call when no
// mapping API key is configured.
var ErrMissingCredential = errors.New("missing GOOGLE_MAPS_API_KEY: configure it in the environment")

// ErrProviderUnavailable marks provider calls that never got an HTTP
// response: timeouts, refused connections, DNS failures.
var ErrProviderUnavailable = errors.New("mapping provider unavailable")

// RoutingError reports a rejected route computation.
// Status is the provider's HTTP status; Body is its raw error payload.
type RoutingError struct {
	Status int
	Body   string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("routes API error (%d): %s", e.Status, e.Body)
}
