package pariah

import (
	"context"
	"errors"
	"net"

	"github.com/ansel1/merry"
)

// Configuration and template errors.  These are always returned before any
// network I/O.  Test for them with merry.Is().
// nolint:gochecknoglobals
var (
	ErrInvalidBaseURL       = merry.New("invalid base url")
	ErrMissingPathParameter = merry.New("missing path parameter")
	ErrMissingMethod        = merry.New("missing method")
	ErrUnknownVerb          = merry.New("unknown verb")
	ErrInvalidParams        = merry.New("invalid params")
)

// Errors which end up wrapped in a TransportError.
// nolint:gochecknoglobals
var (
	// ErrRedirect is returned by the client when a redirect is received
	// and the redirect policy is RedirectError.
	ErrRedirect = errors.New("redirect not allowed by policy")

	// ErrResponseTooLarge is returned when a response body exceeds
	// Options.MaxResponseSize.
	ErrResponseTooLarge = merry.New("response body exceeds max size")
)

// TransportError is returned when the exchange itself failed: DNS, refused
// connections, timeouts, cancellation, redirect policy violations, or failures
// reading the response body.  HTTP error statuses are never TransportErrors.
type TransportError struct {
	// Cancelled is true if the exchange was aborted by context cancellation,
	// a deadline, or a network timeout.
	Cancelled bool
	Err       error
}

func (e *TransportError) Error() string {
	if e.Cancelled {
		return "transport cancelled: " + e.Err.Error()
	}
	return "transport error: " + e.Err.Error()
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying transport failure.
func (e *TransportError) Cause() error {
	return e.Err
}

func newTransportError(ctx context.Context, err error) *TransportError {
	var netErr net.Error
	cancelled := ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())
	return &TransportError{Cancelled: cancelled, Err: err}
}

// IsCancelled reports whether err is a TransportError caused by cancellation
// or timeout.
func IsCancelled(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Cancelled
}
