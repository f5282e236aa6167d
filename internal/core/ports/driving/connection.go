package driving

import (
	"context"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// ConnectionService hands out access tokens and manages integrations.
type ConnectionService interface {
	// GetAccessToken returns a valid bearer token for the scope.
	// Returns "", nil when no integration is active (not connected).
	// Returns *domain.TokenExpiredError when the user must reconnect.
	GetAccessToken(ctx context.Context, scope domain.ScopeKey) (string, error)

	// IsConnected returns true if a token can be obtained for the scope.
	IsConnected(ctx context.Context, scope domain.ScopeKey) bool

	// NeedsReconnection reports whether the stored token is stale,
	// without touching the cache.
	NeedsReconnection(ctx context.Context, scope domain.ScopeKey) (bool, error)

	// Status summarises the integration for the scope.
	Status(ctx context.Context, scope domain.ScopeKey) (*domain.ConnectionStatus, error)

	// Connect stores a new active integration, replacing any previous one.
	Connect(ctx context.Context, integration domain.Integration) error

	// Disconnect deactivates the scope's integration and evicts its token.
	Disconnect(ctx context.Context, scope domain.ScopeKey) error

	// ClearCache evicts the given scopes, or all scopes when none are given.
	ClearCache(scopes ...domain.ScopeKey)
}
