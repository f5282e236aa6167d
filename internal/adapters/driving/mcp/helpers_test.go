package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contas/internal/adapters/driven/cache"
	"github.com/custodia-labs/contas/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/services"
	"github.com/custodia-labs/contas/internal/extractors/invoice"
)

var (
	testScope = domain.NewScopeKey("ana", "")
	fixedNow  = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
)

func newExtractor() *invoice.Extractor {
	return invoice.New(invoice.WithClock(func() time.Time { return fixedNow }))
}

// newTestServer wires real services over in-memory stores.
func newTestServer(t *testing.T, txs ...domain.Transaction) (*Server, *services.TokenCache) {
	t.Helper()
	ctx := context.Background()

	txStore := memory.NewTransactionStore()
	for _, tx := range txs {
		require.NoError(t, txStore.Save(ctx, tx))
	}
	extractor := newExtractor()
	tokens := services.NewTokenCache(memory.NewIntegrationStore(), cache.NewTokens(0, 0), domain.TokenSettings{})

	srv, err := NewServer(&Ports{
		Extraction:   extractor,
		Connections:  tokens,
		Transactions: services.NewTransactionService(txStore, extractor),
		Scope:        testScope,
	})
	require.NoError(t, err)
	return srv, tokens
}

func transaction(id, desc string, due time.Time, paid bool) domain.Transaction {
	return domain.Transaction{
		ID:          id,
		UserID:      testScope.UserID,
		Description: desc,
		Amount:      100,
		DueDate:     due,
		Category:    domain.CategoryOther,
		Direction:   domain.DirectionExpense,
		Paid:        paid,
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
	}
}
