// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across storage/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	// Delete operations swallow it to stay idempotent.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a missing or malformed input field.
	// Always recoverable; the prior state is intact.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken indicates the email is already registered (case-folded compare).
	ErrEmailTaken = errors.New("email already registered")

	// ErrEmailNotFound indicates no account exists for the email.
	ErrEmailNotFound = errors.New("email not found")

	// ErrWrongPassword indicates the supplied password does not match the stored hash.
	ErrWrongPassword = errors.New("wrong password")

	// ErrWeakPassword indicates the password is shorter than the minimum length.
	ErrWeakPassword = errors.New("password too short")

	// ErrRateLimited indicates temporary login lock due to repeated failures.
	ErrRateLimited = errors.New("rate limited")

	// ErrNoSession indicates no account is currently logged in.
	ErrNoSession = errors.New("no active session")
)
