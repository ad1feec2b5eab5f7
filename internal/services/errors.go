package services

import (
	"errors"

	"souq/internal/repositories"
)

// Sentinel errors surfaced to handlers. Handlers match with errors.Is and map
// each to a status code plus a user-facing message; anything unrecognized is
// logged and reported as a generic failure.
var (
	// ErrDuplicateEmail mirrors the store-level unique constraint on email.
	ErrDuplicateEmail = repositories.ErrDuplicateEmail
	// ErrNotFound covers both "does not exist" and "not yours": ownership
	// failures report identically to avoid leaking existence.
	ErrNotFound = repositories.ErrNotFound
	// ErrInvalidCredentials never reveals whether the email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRating means the score is outside the accepted bound.
	ErrInvalidRating = errors.New("rating out of range")
)
