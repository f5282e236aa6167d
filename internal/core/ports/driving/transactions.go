package driving

import (
	"context"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// TransactionService manages confirmed transactions.
type TransactionService interface {
	// List returns transactions with their urgency computed for today.
	List(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionView, error)

	// MarkPaid settles a transaction.
	MarkPaid(ctx context.Context, id string) (*domain.Transaction, error)

	// Delete removes a transaction.
	Delete(ctx context.Context, id string) error
}
