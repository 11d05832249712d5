package app

import (
	"errors"
	"fmt"
)

// Sentinel errors form the service's failure taxonomy. Handlers map these to
// status codes; everything else is normalized to an internal failure at the
// web boundary.
var (
	// ErrInputTooShort rejects free-text input under three characters.
	ErrInputTooShort = errors.New("input text too short")

	// ErrNoMatch means the catalog holds no game for the given filters.
	// Retrying the same filters against the same pool is pointless.
	ErrNoMatch = errors.New("no game matches the given filters")

	// ErrAllRecentlyRecommended means matches exist but every sampled one
	// was already recommended within the dedup window. Distinct from
	// ErrNoMatch so callers can suggest trying again later.
	ErrAllRecentlyRecommended = errors.New("all matching games were recently recommended")
)

// UpstreamError wraps a collaborator failure (network, non-2xx, timeout,
// open circuit breaker). Surfaced as a gateway-style error; never retried
// automatically.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
