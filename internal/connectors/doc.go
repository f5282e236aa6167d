// Package connectors builds the provider clients used by the import flow.
//
// GoogleFactory binds Gmail, Calendar and Sheets clients to a
// driven.TokenProvider, so every API call reads its bearer token through
// the token cache.
package connectors
