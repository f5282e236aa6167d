package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Authentication Errors.

	// ErrNotConnected indicates no active integration exists for the scope.
	// Callers that can degrade should treat this as "prompt to connect".
	ErrNotConnected = errors.New("integration not connected")

	// ErrAuthExpired indicates the access token is stale and cannot be refreshed
	// automatically. The user must reconnect.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrAuthInvalid indicates the provider rejected the credentials.
	ErrAuthInvalid = errors.New("authentication invalid")

	// Connector Errors.

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// TokenExpiredError reports an integration whose token is stale.
// It matches ErrAuthExpired with errors.Is.
type TokenExpiredError struct {
	Scope     ScopeKey
	ExpiresAt time.Time
}

func (e *TokenExpiredError) Error() string {
	return fmt.Sprintf("token for %s expired at %s: reconnect required",
		e.Scope, e.ExpiresAt.Format(time.RFC3339))
}

// Unwrap allows errors.Is(err, ErrAuthExpired).
func (e *TokenExpiredError) Unwrap() error {
	return ErrAuthExpired
}

// IsReconnectRequired returns true if err means the user has to re-authenticate.
func IsReconnectRequired(err error) bool {
	return errors.Is(err, ErrAuthExpired) || errors.Is(err, ErrAuthInvalid)
}
