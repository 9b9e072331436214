package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for provider operations.
var (
	// ErrUnknownProvider indicates the requested provider is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrNotConfigured indicates no credentials exist for the provider.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrTimeout indicates the request exceeded the transport timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrEmptyResponse indicates the provider returned a well-formed
	// body with no content in it.
	ErrEmptyResponse = errors.New("empty response from provider")
)

// Error wraps provider errors with context.
type Error struct {
	Provider string // Provider name ("openai", "ollama", etc.)
	Op       string // Operation that failed ("send", "list-models")
	Status   int    // HTTP status code, 0 when the failure was not HTTP-level
	Body     string // Response body excerpt for non-2xx statuses
	Err      error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Provider, e.Op, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: status %d", e.Provider, e.Op, e.Status)
	case e.Provider != "":
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new provider error.
func NewError(provider, op string, err error) *Error {
	return &Error{
		Provider: provider,
		Op:       op,
		Err:      err,
	}
}

// NewHTTPError creates a provider error for a non-2xx response.
func NewHTTPError(provider, op string, status int, body string) *Error {
	return &Error{
		Provider: provider,
		Op:       op,
		Status:   status,
		Body:     body,
		Err:      fmt.Errorf("unexpected status %d", status),
	}
}

// ClassifyTransport maps transport failures onto the sentinels: a
// timeout, whether from the client deadline or the network layer,
// becomes ErrTimeout. Other errors pass through unchanged.
func ClassifyTransport(err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

// HTTPStatus extracts the HTTP status from an error chain.
// Returns 0, false when the error carries no status.
func HTTPStatus(err error) (int, bool) {
	var provErr *Error
	if errors.As(err, &provErr) && provErr.Status != 0 {
		return provErr.Status, true
	}
	return 0, false
}
