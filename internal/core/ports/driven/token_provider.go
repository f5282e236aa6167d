package driven

import (
	"context"
)

// TokenProvider provides access tokens for authenticated API calls.
//
// Implementations never refresh tokens silently: a stale token surfaces as
// *domain.TokenExpiredError so the user can reconnect.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// Returns domain.ErrNotConnected if no integration is active.
	GetToken(ctx context.Context) (string, error)
}
