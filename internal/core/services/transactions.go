package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/core/ports/driving"
)

// Ensure TransactionService implements the interface.
var _ driving.TransactionService = (*TransactionService)(nil)

// TransactionService manages confirmed transactions.
type TransactionService struct {
	store     driven.TransactionStore
	extractor driving.ExtractionService
	now       func() time.Time
}

// NewTransactionService creates a new transaction service.
// The extractor supplies urgency classification.
func NewTransactionService(store driven.TransactionStore, extractor driving.ExtractionService) *TransactionService {
	return &TransactionService{
		store:     store,
		extractor: extractor,
		now:       time.Now,
	}
}

// List returns transactions with urgency computed at call time.
func (s *TransactionService) List(ctx context.Context, filter domain.TransactionFilter) ([]domain.TransactionView, error) {
	if s.store == nil || s.extractor == nil {
		return nil, domain.ErrNotImplemented
	}
	txs, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	views := make([]domain.TransactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, domain.TransactionView{
			Transaction: tx,
			Urgency:     s.extractor.ClassifyUrgency(tx.DueDate),
		})
	}
	return views, nil
}

// MarkPaid settles a transaction. Settling twice keeps the first PaidAt.
func (s *TransactionService) MarkPaid(ctx context.Context, id string) (*domain.Transaction, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	tx, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Paid {
		return tx, nil
	}

	now := s.now()
	tx.Paid = true
	tx.PaidAt = &now
	tx.UpdatedAt = now
	if err := s.store.Save(ctx, *tx); err != nil {
		return nil, fmt.Errorf("save transaction: %w", err)
	}
	return tx, nil
}

// Delete removes a transaction.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	return s.store.Delete(ctx, id)
}
