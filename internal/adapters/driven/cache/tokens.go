package cache

import (
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
)

// Ensure Tokens implements the interface.
var _ driven.TokenCacheStore = (*Tokens)(nil)

// DefaultMaxTokens bounds the number of cached scopes.
const DefaultMaxTokens = 1024

// Tokens is an otter-backed token cache keyed by scope.
//
// Otter evicts entries after ttl as a memory bound only. Freshness is
// decided by the caller through domain.CachedToken.SafeUntil.
type Tokens struct {
	cache *otter.Cache[domain.ScopeKey, domain.CachedToken]
}

// NewTokens creates a token cache holding at most maxSize scopes.
func NewTokens(ttl time.Duration, maxSize int) *Tokens {
	if maxSize <= 0 {
		maxSize = DefaultMaxTokens
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Tokens{
		cache: otter.Must(&otter.Options[domain.ScopeKey, domain.CachedToken]{
			MaximumSize:      maxSize,
			ExpiryCalculator: otter.ExpiryCreating[domain.ScopeKey, domain.CachedToken](ttl),
		}),
	}
}

// Get returns the cached token for scope.
func (t *Tokens) Get(scope domain.ScopeKey) (domain.CachedToken, bool) {
	entry, ok := t.cache.GetEntry(scope)
	if !ok {
		return domain.CachedToken{}, false
	}
	return entry.Value, true
}

// Set replaces any entry for scope.
func (t *Tokens) Set(scope domain.ScopeKey, token domain.CachedToken) {
	t.cache.Set(scope, token)
}

// Evict removes scope.
func (t *Tokens) Evict(scope domain.ScopeKey) {
	t.cache.Invalidate(scope)
}

// EvictAll empties the cache.
func (t *Tokens) EvictAll() {
	t.cache.InvalidateAll()
}
