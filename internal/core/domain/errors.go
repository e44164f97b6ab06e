package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownSection indicates a section key absent from the catalog.
	ErrUnknownSection = errors.New("unknown section")

	// ErrUnknownField indicates a field key absent from its section's map.
	ErrUnknownField = errors.New("unknown field")

	// ErrNoDraft indicates no draft is currently stored.
	ErrNoDraft = errors.New("no draft stored")

	// ErrSyncInProgress indicates a push is already in flight.
	ErrSyncInProgress = errors.New("sync in progress")

	// Authentication errors.

	// ErrAuthRequired indicates no valid session is held; the push was
	// skipped, not attempted.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the supplied credentials were rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// Remote endpoint errors.

	// ErrServerRejected indicates a well-formed HTTP error response from
	// the household API. The server message is wrapped alongside.
	ErrServerRejected = errors.New("server rejected record")

	// ErrUnreachable indicates the request never reached the server
	// (DNS failure, timeout, refused connection).
	ErrUnreachable = errors.New("server unreachable")

	// ErrMalformedResponse indicates a response body that failed to
	// parse as JSON.
	ErrMalformedResponse = errors.New("malformed server response")
)
