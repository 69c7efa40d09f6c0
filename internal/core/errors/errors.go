// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Binding errors.
var (
	// ErrNotConfigured indicates the user has no storage target bound yet.
	ErrNotConfigured = errors.New("storage target not configured")

	// ErrBadUsage indicates a command was called with the wrong argument count or shape.
	ErrBadUsage = errors.New("bad usage")

	// ErrInvalidTarget indicates a storage target with missing parts.
	ErrInvalidTarget = errors.New("invalid storage target")
)

// Ingestion errors.
var (
	// ErrNoVideoPayload indicates an inbound event without an attached video.
	ErrNoVideoPayload = errors.New("no video payload")

	// ErrDuplicateRecord is returned by storage backends when the store itself
	// rejects a second record for the same stable id.
	ErrDuplicateRecord = errors.New("duplicate record")
)

// Storage errors.
var (
	// ErrStorageFailure wraps every connectivity, auth or query error from a document store.
	ErrStorageFailure = errors.New("storage failure")

	// ErrUnsupportedEndpoint indicates an endpoint scheme no backend can serve.
	ErrUnsupportedEndpoint = errors.New("unsupported storage endpoint")

	// ErrGatewayClosed indicates an operation on a gateway after Close.
	ErrGatewayClosed = errors.New("gateway closed")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
