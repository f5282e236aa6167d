package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/core/ports/driving"
	"github.com/custodia-labs/contas/internal/logger"
)

// Ensure TokenCache implements the interface.
var _ driving.ConnectionService = (*TokenCache)(nil)

// TokenCache hands out access tokens per scope, backed by a process-local
// cache in front of the integration store.
//
// Tokens are never refreshed silently. Once a stored token reaches its
// expiry minus the refresh margin the caller gets *domain.TokenExpiredError
// and the user has to reconnect.
type TokenCache struct {
	store    driven.IntegrationStore
	cache    driven.TokenCacheStore
	settings domain.TokenSettings
	now      func() time.Time
}

// NewTokenCache creates a token cache. Zero settings fall back to defaults.
func NewTokenCache(
	store driven.IntegrationStore,
	cache driven.TokenCacheStore,
	settings domain.TokenSettings,
) *TokenCache {
	if settings.RefreshMargin <= 0 {
		settings.RefreshMargin = domain.DefaultRefreshMargin
	}
	if settings.DefaultTTL <= 0 {
		settings.DefaultTTL = domain.DefaultTokenTTL
	}
	return &TokenCache{
		store:    store,
		cache:    cache,
		settings: settings,
		now:      time.Now,
	}
}

// GetAccessToken returns a bearer token for the scope.
// Returns "", nil when the scope has no active integration.
func (c *TokenCache) GetAccessToken(ctx context.Context, scope domain.ScopeKey) (string, error) {
	if c.store == nil || c.cache == nil {
		return "", domain.ErrNotImplemented
	}

	now := c.now()

	if cached, ok := c.cache.Get(scope); ok && cached.ValidAt(now) {
		return cached.Token, nil
	}

	integration, err := c.store.FindActive(ctx, scope)
	if err != nil {
		return "", fmt.Errorf("load integration for %s: %w", scope, err)
	}
	if integration == nil || integration.AccessToken == "" {
		c.cache.Evict(scope)
		return "", nil
	}

	if integration.IsExpiredAt(now, c.settings.RefreshMargin) {
		c.cache.Evict(scope)
		logger.Log().Warn().
			Str("user", scope.UserID).
			Str("workspace", scope.WorkspaceID).
			Time("expires_at", *integration.ExpiresAt).
			Bool("has_refresh_token", integration.HasRefreshToken()).
			Msg("access token expired; refresh not available, user must reconnect")
		return "", &domain.TokenExpiredError{Scope: scope, ExpiresAt: *integration.ExpiresAt}
	}

	safeUntil := now.Add(c.settings.DefaultTTL)
	if integration.ExpiresAt != nil {
		safeUntil = integration.ExpiresAt.Add(-c.settings.RefreshMargin)
	}
	c.cache.Set(scope, domain.CachedToken{Token: integration.AccessToken, SafeUntil: safeUntil})
	logger.Debug("cached token for %s until %s", scope, safeUntil.Format(time.RFC3339))

	return integration.AccessToken, nil
}

// IsConnected returns true if a non-empty token can be obtained.
func (c *TokenCache) IsConnected(ctx context.Context, scope domain.ScopeKey) bool {
	token, err := c.GetAccessToken(ctx, scope)
	return err == nil && token != ""
}

// NeedsReconnection evaluates the stored record directly.
// The cache is neither read nor written.
func (c *TokenCache) NeedsReconnection(ctx context.Context, scope domain.ScopeKey) (bool, error) {
	if c.store == nil {
		return false, domain.ErrNotImplemented
	}
	integration, err := c.store.FindActive(ctx, scope)
	if err != nil {
		return false, fmt.Errorf("load integration for %s: %w", scope, err)
	}
	if integration == nil {
		return false, nil
	}
	return integration.IsExpiredAt(c.now(), c.settings.RefreshMargin), nil
}

// Status summarises the scope's integration without touching the cache.
func (c *TokenCache) Status(ctx context.Context, scope domain.ScopeKey) (*domain.ConnectionStatus, error) {
	if c.store == nil {
		return nil, domain.ErrNotImplemented
	}
	integration, err := c.store.FindActive(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load integration for %s: %w", scope, err)
	}

	status := &domain.ConnectionStatus{Scope: scope}
	if integration == nil || integration.AccessToken == "" {
		return status, nil
	}

	expired := integration.IsExpiredAt(c.now(), c.settings.RefreshMargin)
	status.Connected = !expired
	status.NeedsReconnection = expired
	status.AccountEmail = integration.AccountEmail
	status.ExpiresAt = integration.ExpiresAt
	return status, nil
}

// Connect stores integration as the scope's only active integration and
// drops any cached token for the scope.
func (c *TokenCache) Connect(ctx context.Context, integration domain.Integration) error {
	if c.store == nil || c.cache == nil {
		return domain.ErrNotImplemented
	}
	integration.UserID = strings.TrimSpace(integration.UserID)
	integration.WorkspaceID = strings.TrimSpace(integration.WorkspaceID)
	if integration.UserID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if integration.AccessToken == "" {
		return fmt.Errorf("%w: access token is required", domain.ErrInvalidInput)
	}

	now := c.now()
	if integration.ID == "" {
		integration.ID = uuid.NewString()
	}
	if integration.Provider == "" {
		integration.Provider = domain.ProviderGoogle
	}
	if integration.CreatedAt.IsZero() {
		integration.CreatedAt = now
	}
	integration.UpdatedAt = now
	integration.IsActive = true

	scope := integration.Scope()
	if err := c.store.Deactivate(ctx, scope); err != nil {
		return fmt.Errorf("deactivate previous integration: %w", err)
	}
	if err := c.store.Save(ctx, integration); err != nil {
		return fmt.Errorf("save integration: %w", err)
	}
	c.cache.Evict(scope)

	logger.Info("connected %s for %s", integration.Provider, scope)
	return nil
}

// Disconnect deactivates the scope's integration and evicts its token.
func (c *TokenCache) Disconnect(ctx context.Context, scope domain.ScopeKey) error {
	if c.store == nil || c.cache == nil {
		return domain.ErrNotImplemented
	}
	if err := c.store.Deactivate(ctx, scope); err != nil {
		return fmt.Errorf("deactivate integration: %w", err)
	}
	c.cache.Evict(scope)
	return nil
}

// ClearCache evicts the given scopes, or every scope when none are given.
func (c *TokenCache) ClearCache(scopes ...domain.ScopeKey) {
	if c.cache == nil {
		return
	}
	if len(scopes) == 0 {
		c.cache.EvictAll()
		return
	}
	for _, scope := range scopes {
		c.cache.Evict(scope)
	}
}

// ForScope returns a TokenProvider bound to scope for use by connectors.
func (c *TokenCache) ForScope(scope domain.ScopeKey) driven.TokenProvider {
	return &scopedTokenProvider{cache: c, scope: scope}
}

// scopedTokenProvider turns "not connected" into domain.ErrNotConnected so
// API clients fail with a clear error instead of sending an empty bearer.
type scopedTokenProvider struct {
	cache *TokenCache
	scope domain.ScopeKey
}

func (p *scopedTokenProvider) GetToken(ctx context.Context) (string, error) {
	token, err := p.cache.GetAccessToken(ctx, p.scope)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrNotConnected, p.scope)
	}
	return token, nil
}
