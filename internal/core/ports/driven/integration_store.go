package driven

import (
	"context"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// IntegrationStore persists OAuth integrations (token records).
// At most one integration is active per scope.
type IntegrationStore interface {
	// Save creates or updates an integration by ID.
	Save(ctx context.Context, integration domain.Integration) error

	// FindActive returns the active integration for the scope.
	// Returns nil, nil if no active integration exists.
	FindActive(ctx context.Context, scope domain.ScopeKey) (*domain.Integration, error)

	// Deactivate marks every integration for the scope inactive.
	// Deactivating a scope with no integrations is not an error.
	Deactivate(ctx context.Context, scope domain.ScopeKey) error

	// List returns all integrations (active or not) for a user.
	List(ctx context.Context, userID string) ([]domain.Integration, error)
}
