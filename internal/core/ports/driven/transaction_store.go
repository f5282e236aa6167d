package driven

import (
	"context"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// TransactionStore persists confirmed transactions.
type TransactionStore interface {
	// Save creates or updates a transaction by ID.
	Save(ctx context.Context, tx domain.Transaction) error

	// Get retrieves a transaction by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Transaction, error)

	// FindBySourceMessage returns the transaction imported from a message.
	// Returns nil, nil if the message has not been imported for the scope.
	FindBySourceMessage(ctx context.Context, scope domain.ScopeKey, messageID string) (*domain.Transaction, error)

	// List returns transactions matching the filter, ordered by due date.
	List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// Delete removes a transaction by ID.
	Delete(ctx context.Context, id string) error
}
