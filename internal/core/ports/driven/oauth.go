package driven

import (
	"context"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// OAuthClient runs the authorization-code flow against a provider.
type OAuthClient interface {
	// AuthCodeURL returns the consent page URL for a PKCE request.
	AuthCodeURL(redirectURI, state, verifier string) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code, redirectURI, verifier string) (*domain.OAuthGrant, error)
}
