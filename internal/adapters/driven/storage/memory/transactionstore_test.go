package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contas/internal/core/domain"
)

func tx(id, msgID string, due time.Time) domain.Transaction {
	return domain.Transaction{
		ID: id, UserID: "alice", SourceMessageID: msgID, Description: id,
		Amount: 10, DueDate: due, Direction: domain.DirectionExpense,
	}
}

func TestTransactionStore_CRUD(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, tx("t1", "m1", due)))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.Description)

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Get(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "t1"), domain.ErrNotFound)
}

func TestTransactionStore_FindBySourceMessage(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, tx("t1", "m1", time.Now())))

	found, err := store.FindBySourceMessage(ctx, domain.NewScopeKey("alice", ""), "m1")
	require.NoError(t, err)
	require.NotNil(t, found)

	found, err = store.FindBySourceMessage(ctx, domain.NewScopeKey("bob", ""), "m1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestTransactionStore_ListOrdersByDueDate(t *testing.T) {
	store := NewTransactionStore()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, tx("c", "", base.AddDate(0, 0, 2))))
	require.NoError(t, store.Save(ctx, tx("a", "", base)))
	paid := tx("b", "", base.AddDate(0, 0, 1))
	paid.Paid = true
	require.NoError(t, store.Save(ctx, paid))

	open, err := store.List(ctx, domain.TransactionFilter{Scope: domain.NewScopeKey("alice", "")})
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "a", open[0].ID)
	assert.Equal(t, "c", open[1].ID)

	all, err := store.List(ctx, domain.TransactionFilter{Scope: domain.NewScopeKey("alice", ""), IncludePaid: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
