package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
)

// Ensure IntegrationStore implements the interface.
var _ driven.IntegrationStore = (*IntegrationStore)(nil)

// IntegrationStore is an in-memory implementation of driven.IntegrationStore.
type IntegrationStore struct {
	mu           sync.RWMutex
	integrations map[string]domain.Integration
}

// NewIntegrationStore creates a new in-memory integration store.
func NewIntegrationStore() *IntegrationStore {
	return &IntegrationStore{
		integrations: make(map[string]domain.Integration),
	}
}

// Save stores or updates an integration.
func (s *IntegrationStore) Save(_ context.Context, integration domain.Integration) error {
	if integration.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.integrations[integration.ID] = integration
	return nil
}

// FindActive returns the most recently updated active integration for the scope.
func (s *IntegrationStore) FindActive(_ context.Context, scope domain.ScopeKey) (*domain.Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *domain.Integration
	for _, in := range s.integrations {
		if !in.IsActive || in.Scope() != scope {
			continue
		}
		if found == nil || in.UpdatedAt.After(found.UpdatedAt) {
			match := in
			found = &match
		}
	}
	return found, nil
}

// Deactivate marks every integration for the scope inactive.
func (s *IntegrationStore) Deactivate(_ context.Context, scope domain.ScopeKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, in := range s.integrations {
		if in.Scope() == scope && in.IsActive {
			in.IsActive = false
			s.integrations[id] = in
		}
	}
	return nil
}

// List returns all integrations for a user, newest first.
func (s *IntegrationStore) List(_ context.Context, userID string) ([]domain.Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Integration, 0)
	for _, in := range s.integrations {
		if in.UserID == userID {
			result = append(result, in)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}
