package google

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// Common Google API errors. Each wraps the matching domain sentinel.
var (
	// ErrUnauthorized indicates the access token was rejected.
	ErrUnauthorized = fmt.Errorf("google: unauthorised: %w", domain.ErrAuthExpired)

	// ErrForbidden indicates a missing scope or disabled API.
	ErrForbidden = fmt.Errorf("google: forbidden: %w", domain.ErrAuthInvalid)

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = fmt.Errorf("google: resource not found: %w", domain.ErrNotFound)

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = fmt.Errorf("google: rate limit exceeded: %w", domain.ErrRateLimited)
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || hasCode(err, http.StatusUnauthorized)
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) || hasCode(err, http.StatusForbidden)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || hasCode(err, http.StatusNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
// Google also reports exhausted per-user quotas as 403 rateLimitExceeded.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) || hasCode(err, http.StatusTooManyRequests) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusForbidden {
		for _, item := range gerr.Errors {
			if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
				return true
			}
		}
	}
	return false
}

// RetryAfter returns the server's Retry-After hint, or 0.
func RetryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func hasCode(err error, code int) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == code
}

// WrapError converts a Google API error to a domain-aware error.
// Token errors from the token source pass through untouched.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var expired *domain.TokenExpiredError
	if errors.As(err, &expired) {
		return expired
	}
	if errors.Is(err, domain.ErrNotConnected) {
		return domain.ErrNotConnected
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch {
	case gerr.Code == http.StatusUnauthorized:
		return ErrUnauthorized
	case IsRateLimited(gerr):
		return ErrRateLimited
	case gerr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, gerr.Message)
	case gerr.Code == http.StatusNotFound:
		return ErrNotFound
	default:
		return err
	}
}
