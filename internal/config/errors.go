package config

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeout is returned when the request timeout is negative.
var ErrInvalidTimeout = errors.New("timeout must not be negative")

// ErrInvalidLimit is returned when the fetch concurrency limit is negative.
var ErrInvalidLimit = errors.New("fetch limit must not be negative")

// ErrConfigNotFound is returned when no run file exists at the
// searched locations.
var ErrConfigNotFound = errors.New("run file not found")

// InvalidInputError reports a source URL that is not a usable
// HTTP or HTTPS URL.
type InvalidInputError struct {
	// URL is the offending input as configured.
	URL string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("input is not a valid http(s) URL: %q", e.URL)
}
