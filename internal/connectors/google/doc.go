// Package google provides shared infrastructure for the Google API connectors.
//
// This package contains common utilities used by the gmail, calendar and
// sheets connectors:
//   - TokenSource adapter from the token cache to oauth2.TokenSource
//   - Service factories for Google API clients
//   - Mapping of Google API errors (401, 403, 404, 429) to domain errors
//   - Rate limiting to respect per-user API quotas
//
// # Usage
//
//	ts := google.NewTokenSource(ctx, tokenProvider)
//	svc, err := google.NewGmailService(ctx, ts)
//
// The token source never refreshes. An expired integration surfaces as
// *domain.TokenExpiredError from the first API call.
package google
