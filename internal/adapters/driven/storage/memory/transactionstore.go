package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
)

// Ensure TransactionStore implements the interface.
var _ driven.TransactionStore = (*TransactionStore)(nil)

// TransactionStore is an in-memory implementation of driven.TransactionStore.
type TransactionStore struct {
	mu           sync.RWMutex
	transactions map[string]domain.Transaction
}

// NewTransactionStore creates a new in-memory transaction store.
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		transactions: make(map[string]domain.Transaction),
	}
}

// Save stores or updates a transaction.
func (s *TransactionStore) Save(_ context.Context, tx domain.Transaction) error {
	if tx.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[tx.ID] = tx
	return nil
}

// Get retrieves a transaction by ID.
func (s *TransactionStore) Get(_ context.Context, id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.transactions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tx, nil
}

// FindBySourceMessage returns the transaction imported from messageID.
func (s *TransactionStore) FindBySourceMessage(
	_ context.Context,
	scope domain.ScopeKey,
	messageID string,
) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tx := range s.transactions {
		if tx.SourceMessageID == messageID && tx.Scope() == scope {
			match := tx
			return &match, nil
		}
	}
	return nil, nil
}

// List returns matching transactions ordered by due date, then description.
func (s *TransactionStore) List(_ context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.Scope() != filter.Scope {
			continue
		}
		if tx.Paid && !filter.IncludePaid {
			continue
		}
		if filter.Direction != "" && tx.Direction != filter.Direction {
			continue
		}
		result = append(result, tx)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].DueDate.Equal(result[j].DueDate) {
			return result[i].DueDate.Before(result[j].DueDate)
		}
		return result[i].Description < result[j].Description
	})
	return result, nil
}

// Delete removes a transaction.
func (s *TransactionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}
