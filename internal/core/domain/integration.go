package domain

import (
	"strings"
	"time"
)

// ProviderGoogle identifies Google Workspace integrations (Gmail, Calendar, Sheets).
const ProviderGoogle = "google"

// ScopeKey selects a single integration credential.
// An empty WorkspaceID selects the user's personal (default) integration.
type ScopeKey struct {
	UserID      string
	WorkspaceID string
}

// NewScopeKey builds a ScopeKey, trimming surrounding whitespace.
func NewScopeKey(userID, workspaceID string) ScopeKey {
	return ScopeKey{
		UserID:      strings.TrimSpace(userID),
		WorkspaceID: strings.TrimSpace(workspaceID),
	}
}

// IsPersonal returns true if the scope has no workspace.
func (k ScopeKey) IsPersonal() bool {
	return k.WorkspaceID == ""
}

// String renders the scope as "user" or "user/workspace".
func (k ScopeKey) String() string {
	if k.WorkspaceID == "" {
		return k.UserID
	}
	return k.UserID + "/" + k.WorkspaceID
}

// Integration is a stored OAuth credential for one scope.
//
// Only active integrations are considered by token lookups. At most one
// integration is active per scope.
type Integration struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`
	// UserID owns the integration.
	UserID string `json:"user_id"`
	// WorkspaceID is empty for the user's personal integration.
	WorkspaceID string `json:"workspace_id,omitempty"`
	// Provider identifies the OAuth provider (currently always "google").
	Provider string `json:"provider"`

	// AccountEmail is the provider account the tokens belong to.
	AccountEmail string `json:"account_email,omitempty"`

	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is only present when offline access was granted.
	RefreshToken string `json:"refresh_token,omitempty"`
	// ExpiresAt is nil for legacy records, which are treated as never expiring.
	ExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	// Scopes are the OAuth scopes granted.
	Scopes []string `json:"scopes,omitempty"`

	// IsActive is false once the user disconnects.
	IsActive bool `json:"is_active"`

	// CreatedAt is when the integration was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the integration was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// Scope returns the scope key selecting this integration.
func (i *Integration) Scope() ScopeKey {
	return ScopeKey{UserID: i.UserID, WorkspaceID: i.WorkspaceID}
}

// IsExpiredAt reports whether the access token must be treated as stale at now,
// given a safety margin subtracted from the stated expiry.
// Integrations without an expiry never expire.
func (i *Integration) IsExpiredAt(now time.Time, margin time.Duration) bool {
	if i.ExpiresAt == nil {
		return false
	}
	return !now.Before(i.ExpiresAt.Add(-margin))
}

// HasRefreshToken returns true if a refresh token is available.
func (i *Integration) HasRefreshToken() bool {
	return i.RefreshToken != ""
}

// CachedToken is a process-local copy of an access token.
type CachedToken struct {
	// Token is the bearer string copied from the Integration.
	Token string
	// SafeUntil is the instant after which the token must not be handed out.
	SafeUntil time.Time
}

// ValidAt returns true if the cached token may be returned at now.
func (c CachedToken) ValidAt(now time.Time) bool {
	return c.Token != "" && now.Before(c.SafeUntil)
}

// ConnectionStatus summarises an integration for status displays.
type ConnectionStatus struct {
	Scope             ScopeKey   `json:"scope"`
	Connected         bool       `json:"connected"`
	NeedsReconnection bool       `json:"needs_reconnection"`
	AccountEmail      string     `json:"account_email,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}

// OAuthGrant is the outcome of a completed authorization.
type OAuthGrant struct {
	AccessToken  string
	RefreshToken string
	// ExpiresAt is nil when the provider did not state a lifetime.
	ExpiresAt    *time.Time
	Scopes       []string
	AccountEmail string
}

// Integration builds an unsaved integration for scope from the grant.
func (g OAuthGrant) Integration(scope ScopeKey) Integration {
	return Integration{
		UserID:       scope.UserID,
		WorkspaceID:  scope.WorkspaceID,
		Provider:     ProviderGoogle,
		AccountEmail: g.AccountEmail,
		AccessToken:  g.AccessToken,
		RefreshToken: g.RefreshToken,
		ExpiresAt:    g.ExpiresAt,
		Scopes:       g.Scopes,
	}
}
