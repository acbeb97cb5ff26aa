package models

import "errors"

// Sentinel errors shared across repositories, services and handlers.
// Callers match them with errors.Is.
var (
	// ErrValidation indicates a required field was absent or empty.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken indicates a registration with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound indicates no user record matched the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates the presented password did not match
	// the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
