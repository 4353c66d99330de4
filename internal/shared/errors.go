package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates a missing or malformed request field.
	ErrValidation = errors.New("validation failed")
	// ErrMethodNotAllowed indicates an unsupported verb on a known route.
	ErrMethodNotAllowed = errors.New("method not allowed")
	// ErrUnprocessable indicates a well-formed request the store cannot apply.
	ErrUnprocessable = errors.New("unprocessable entity")
	// ErrReferenced occurs when a row is still referenced by a foreign key, or
	// a foreign key points at a missing row.
	ErrReferenced = errors.New("foreign key constraint violated")
	// ErrDuplicate occurs on unique constraint violations.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrIdempotencyConflict indicates the idempotency key was already used.
	ErrIdempotencyConflict = errors.New("idempotent request already processed")
)
