package driven

import "github.com/custodia-labs/contas/internal/core/domain"

// TokenCacheStore is the process-local cache behind the token cache service.
// Entries are keyed by the scope struct itself, so distinct scopes never
// share an entry. Set always fully replaces any previous entry.
type TokenCacheStore interface {
	// Get returns the cached token for scope, if present.
	Get(scope domain.ScopeKey) (domain.CachedToken, bool)

	// Set stores token under scope.
	Set(scope domain.ScopeKey, token domain.CachedToken)

	// Evict removes the entry for scope.
	Evict(scope domain.ScopeKey)

	// EvictAll removes every entry.
	EvictAll()
}
