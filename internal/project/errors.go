package project

import "errors"

// Error kinds shared by every stage of a health check run. Callers match them
// with errors.Is; the concrete errors wrap one of these.
var (
	// ErrInvalidArgument reports a required value that is empty, zero, or out
	// of range. Raised at the point of assignment.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedMetadata reports a metadata document that exists but cannot
	// be parsed or lacks a required field.
	ErrMalformedMetadata = errors.New("malformed metadata")

	// ErrCIProbeFailed reports an unexpected or malformed CI status response.
	ErrCIProbeFailed = errors.New("ci probe failed")

	// ErrUpstreamUnavailable reports a transport level failure talking to the
	// hosting or CI API (network, authentication, rate limit).
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNotFound is the "not found" signal from the lister, fetcher and
	// prober. It is expected steady-state behaviour, not a failure.
	ErrNotFound = errors.New("not found")
)

// FieldError is an ErrInvalidArgument attributed to a single field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// Unwrap lets errors.Is(err, ErrInvalidArgument) match.
func (e *FieldError) Unwrap() error {
	return ErrInvalidArgument
}

func invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
