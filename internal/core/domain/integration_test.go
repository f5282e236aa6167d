package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScopeKey_String(t *testing.T) {
	assert.Equal(t, "alice", NewScopeKey(" alice ", "").String())
	assert.Equal(t, "alice/acme", NewScopeKey("alice", "acme").String())
	assert.True(t, NewScopeKey("alice", " ").IsPersonal())
	assert.False(t, NewScopeKey("alice", "acme").IsPersonal())
}

func TestIntegration_Scope(t *testing.T) {
	i := &Integration{UserID: "u", WorkspaceID: "w"}
	assert.Equal(t, ScopeKey{UserID: "u", WorkspaceID: "w"}, i.Scope())
}

// TestIntegration_IsExpiredAt_NoExpiry tests that records without expiry never expire
func TestIntegration_IsExpiredAt_NoExpiry(t *testing.T) {
	i := &Integration{AccessToken: "tok"}
	farFuture := time.Now().Add(100 * 365 * 24 * time.Hour)

	assert.False(t, i.IsExpiredAt(farFuture, DefaultRefreshMargin))
}

func TestIntegration_IsExpiredAt(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{"well before margin", now.Add(time.Hour), false},
		{"one second before margin", now.Add(5*time.Minute + time.Second), false},
		{"exactly at margin", now.Add(5 * time.Minute), true},
		{"inside margin", now.Add(time.Minute), true},
		{"already expired", now.Add(-time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expires := tt.expires
			i := &Integration{AccessToken: "tok", ExpiresAt: &expires}
			assert.Equal(t, tt.want, i.IsExpiredAt(now, DefaultRefreshMargin))
		})
	}
}

func TestIntegration_HasRefreshToken(t *testing.T) {
	assert.False(t, (&Integration{}).HasRefreshToken())
	assert.True(t, (&Integration{RefreshToken: "r"}).HasRefreshToken())
}

func TestCachedToken_ValidAt(t *testing.T) {
	now := time.Now()

	assert.True(t, CachedToken{Token: "t", SafeUntil: now.Add(time.Second)}.ValidAt(now))
	assert.False(t, CachedToken{Token: "t", SafeUntil: now}.ValidAt(now))
	assert.False(t, CachedToken{Token: "", SafeUntil: now.Add(time.Hour)}.ValidAt(now))
}

func TestOAuthGrant_Integration(t *testing.T) {
	exp := time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC)
	grant := OAuthGrant{
		AccessToken:  "ya29.a",
		RefreshToken: "1//r",
		ExpiresAt:    &exp,
		Scopes:       []string{"email"},
		AccountEmail: "ana@example.com",
	}

	in := grant.Integration(NewScopeKey("ana", "casa"))

	assert.Equal(t, "ana", in.UserID)
	assert.Equal(t, "casa", in.WorkspaceID)
	assert.Equal(t, ProviderGoogle, in.Provider)
	assert.Equal(t, "ya29.a", in.AccessToken)
	assert.Equal(t, &exp, in.ExpiresAt)
	assert.Equal(t, "ana@example.com", in.AccountEmail)
	assert.False(t, in.IsActive)
	assert.Empty(t, in.ID)
}
