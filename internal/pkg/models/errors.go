package models

import "errors"

// Feed fetch error taxonomy. Every run surfaces at most one of these to the
// user; none are retried automatically.
var (
	// ErrAuthentication covers missing or rejected credentials (HTTP 401/403).
	ErrAuthentication = errors.New("authentication failed")

	// ErrQuotaExceeded covers rate-limit responses (HTTP 429).
	ErrQuotaExceeded = errors.New("request quota exceeded")

	// ErrUpstreamUnavailable covers any other non-2xx response, network
	// failure or timeout while fetching the feed.
	ErrUpstreamUnavailable = errors.New("odds feed unavailable")
)

// ValidationError reports missing or invalid user input or game data.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError wraps a reason into a ValidationError.
func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
