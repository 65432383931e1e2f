package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no identity, or an invalid one, accompanied the request.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrForbidden means the identity is valid but lacks the role or ownership required.
	ErrForbidden = errors.New("access forbidden")
	// ErrNotOwner is the ownership flavour of ErrForbidden.
	ErrNotOwner = fmt.Errorf("%w: candidate belongs to another user", ErrForbidden)
	// ErrCandidateNotFound also covers malformed candidate ids.
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInvalidStatus     = errors.New("status must be one of: Pending, Reviewed, Hired")
	ErrValidation        = errors.New("validation failed")

	// ErrIdempotencyInFlight means another create holding the same key has not finished.
	ErrIdempotencyInFlight = errors.New("a request with this idempotency key is still in progress")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
)
