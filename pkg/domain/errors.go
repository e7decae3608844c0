// Package domain holds errors shared by every domain package.
package domain

import "errors"

// Common domain errors
var (
	// ErrNotAuthenticated is returned when a wallet or query operation is
	// invoked without an active session.
	ErrNotAuthenticated = errors.New("user not authenticated")
	// ErrPersistence is returned when the underlying store fails to read or
	// write the ledger; the in-memory mutation is rolled back first.
	ErrPersistence = errors.New("persistence failure")
	// ErrValidation is returned when input validation fails.
	ErrValidation = errors.New("validation error")
)
