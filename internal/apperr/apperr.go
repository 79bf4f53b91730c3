// Package apperr defines the error taxonomy shared across the adapter.
package apperr

import "fmt"

// AuthError indicates a token exchange or refresh failure.
// Fatal for the current invocation; the platform's reconnect flow takes over.
type AuthError struct {
	Op  string // "exchange", "refresh", "ping"
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth %s failed: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ValidationError indicates a rejected or malformed remote operation.
// Message carries the remote-supplied text when the API provided one.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError, falling back to a generic message
// when the remote response carried none.
func Validation(message string) *ValidationError {
	if message == "" {
		message = "request rejected by remote service"
	}
	return &ValidationError{Message: message}
}

// TransportError indicates a non-2xx response or network failure that did
// not carry an application-level error body.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport failure: %v", e.Err)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }
