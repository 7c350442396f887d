// Package errs holds the sentinel errors shared by all domain repositories.
// The HTTP layer maps them to status codes; repositories wrap them with
// fmt.Errorf("...: %w", ...) to add detail.
package errs

import "errors"

var (
	// ErrNotFound - a referenced row (item, appointment, user, ...) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation - the input itself is unacceptable (missing field, non-positive quantity,
	// a withdrawal that would drive stock negative).
	ErrValidation = errors.New("validation failed")

	// ErrConflict - the operation contradicts current state (duplicate unique name,
	// deleting a referenced row, transitioning an appointment out of a terminal status).
	ErrConflict = errors.New("conflict")

	// ErrStaleSnapshot - the caller's expected stock-before value no longer matches the
	// row; the client must reload and retry.
	ErrStaleSnapshot = errors.New("stale stock snapshot")
)
