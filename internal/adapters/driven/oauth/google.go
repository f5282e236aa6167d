// Package oauth runs the Google authorization-code exchange with PKCE.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	googleOAuth "golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/logger"
)

// UserInfoURL returns the signed-in account's email.
const UserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Scopes requested on connect: read mail, write calendar events, append sheet rows.
var Scopes = []string{
	gmail.GmailReadonlyScope,
	calendar.CalendarEventsScope,
	sheets.SpreadsheetsScope,
	"openid",
	"email",
}

// Verify interface compliance.
var _ driven.OAuthClient = (*Google)(nil)

// Google exchanges authorization codes against Google's OAuth endpoints.
type Google struct {
	clientID     string
	clientSecret string
	endpoint     oauth2.Endpoint
	userInfoURL  string
	httpClient   *http.Client
}

// Option configures a Google client.
type Option func(*Google)

// WithEndpoint overrides the authorization and token endpoints.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(g *Google) { g.endpoint = endpoint }
}

// WithUserInfoURL overrides the userinfo endpoint.
func WithUserInfoURL(url string) Option {
	return func(g *Google) { g.userInfoURL = url }
}

// WithHTTPClient sets the client used for token and userinfo requests.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Google) { g.httpClient = client }
}

// NewGoogle creates a client for the given OAuth app.
func NewGoogle(clientID, clientSecret string, opts ...Option) *Google {
	g := &Google{
		clientID:     clientID,
		clientSecret: clientSecret,
		endpoint:     googleOAuth.Endpoint,
		userInfoURL:  UserInfoURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Google) config(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     g.clientID,
		ClientSecret: g.clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint:     g.endpoint,
	}
}

func (g *Google) context(ctx context.Context) context.Context {
	if g.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
}

// AuthCodeURL returns the consent page URL. Offline access and a forced
// consent prompt make Google issue a refresh token on every connect.
func (g *Google) AuthCodeURL(redirectURI, state, verifier string) string {
	return g.config(redirectURI).AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)
}

// Exchange trades code for tokens and looks up the account email.
// A failed email lookup does not fail the exchange.
func (g *Google) Exchange(ctx context.Context, code, redirectURI, verifier string) (*domain.OAuthGrant, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: authorization code is required", domain.ErrInvalidInput)
	}
	ctx = g.context(ctx)

	tok, err := g.config(redirectURI).Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	grant := &domain.OAuthGrant{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Scopes:       grantedScopes(tok),
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry
		grant.ExpiresAt = &expiry
	}

	email, err := g.fetchEmail(ctx, tok)
	if err != nil {
		logger.Warn("could not read account email: %v", err)
	} else {
		grant.AccountEmail = email
	}
	return grant, nil
}

// grantedScopes prefers the scopes Google reports over the requested ones.
func grantedScopes(tok *oauth2.Token) []string {
	if s, ok := tok.Extra("scope").(string); ok && strings.TrimSpace(s) != "" {
		return strings.Fields(s)
	}
	return append([]string(nil), Scopes...)
}

func (g *Google) fetchEmail(ctx context.Context, tok *oauth2.Token) (string, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("userinfo status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode userinfo: %w", err)
	}
	return info.Email, nil
}
