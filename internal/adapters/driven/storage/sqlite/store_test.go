package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contas/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/contas/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "contas.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestStore_MigrationsRecorded(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	// Re-running is a no-op.
	require.NoError(t, store.migrate(ctx, migrations.FS))
	version, err = store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.IntegrationStore().Save(ctx, testIntegration("i1", "alice", "")))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	found, err := second.IntegrationStore().FindActive(ctx, domain.NewScopeKey("alice", ""))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "i1", found.ID)
}

func testIntegration(id, user, workspace string) domain.Integration {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	expires := now.Add(time.Hour)
	return domain.Integration{
		ID:           id,
		UserID:       user,
		WorkspaceID:  workspace,
		Provider:     domain.ProviderGoogle,
		AccountEmail: user + "@example.com",
		AccessToken:  "access-" + id,
		RefreshToken: "refresh-" + id,
		ExpiresAt:    &expires,
		Scopes:       []string{"gmail.readonly"},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestIntegrationStore_SaveAndFindActive(t *testing.T) {
	store := setupTestStore(t).IntegrationStore()
	ctx := context.Background()
	in := testIntegration("i1", "alice", "acme")

	require.NoError(t, store.Save(ctx, in))

	found, err := store.FindActive(ctx, domain.NewScopeKey("alice", "acme"))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "access-i1", found.AccessToken)
	assert.Equal(t, "refresh-i1", found.RefreshToken)
	assert.Equal(t, "alice@example.com", found.AccountEmail)
	assert.Equal(t, []string{"gmail.readonly"}, found.Scopes)
	assert.True(t, found.IsActive)
	require.NotNil(t, found.ExpiresAt)
	assert.True(t, found.ExpiresAt.Equal(*in.ExpiresAt))
}

func TestIntegrationStore_FindActive_None(t *testing.T) {
	store := setupTestStore(t).IntegrationStore()

	found, err := store.FindActive(context.Background(), domain.NewScopeKey("nobody", ""))

	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestIntegrationStore_ScopesAreSeparate(t *testing.T) {
	store := setupTestStore(t).IntegrationStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testIntegration("personal", "alice", "")))
	require.NoError(t, store.Save(ctx, testIntegration("work", "alice", "acme")))

	personal, err := store.FindActive(ctx, domain.NewScopeKey("alice", ""))
	require.NoError(t, err)
	assert.Equal(t, "personal", personal.ID)

	work, err := store.FindActive(ctx, domain.NewScopeKey("alice", "acme"))
	require.NoError(t, err)
	assert.Equal(t, "work", work.ID)
}

func TestIntegrationStore_NilExpiry(t *testing.T) {
	store := setupTestStore(t).IntegrationStore()
	ctx := context.Background()
	in := testIntegration("legacy", "alice", "")
	in.ExpiresAt = nil
	in.Scopes = nil

	require.NoError(t, store.Save(ctx, in))

	found, err := store.FindActive(ctx, domain.NewScopeKey("alice", ""))
	require.NoError(t, err)
	assert.Nil(t, found.ExpiresAt)
	assert.Empty(t, found.Scopes)
}

func TestIntegrationStore_Deactivate(t *testing.T) {
	store := setupTestStore(t).IntegrationStore()
	ctx := context.Background()
	scope := domain.NewScopeKey("alice", "")
	require.NoError(t, store.Save(ctx, testIntegration("old", "alice", "")))

	require.NoError(t, store.Deactivate(ctx, scope))
	found, err := store.FindActive(ctx, scope)
	require.NoError(t, err)
	assert.Nil(t, found)

	// A new active record is allowed once the old one is inactive.
	require.NoError(t, store.Save(ctx, testIntegration("new", "alice", "")))
	found, err = store.FindActive(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, "new", found.ID)

	all, err := store.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Deactivating an empty scope is fine.
	assert.NoError(t, store.Deactivate(ctx, domain.NewScopeKey("ghost", "")))
}

func TestIntegrationStore_OneActivePerScope(t *testing.T) {
	store := setupTestStore(t).IntegrationStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testIntegration("a", "alice", "")))

	err := store.Save(ctx, testIntegration("b", "alice", ""))
	assert.Error(t, err)
}

func TestIntegrationStore_SaveInvalid(t *testing.T) {
	store := setupTestStore(t).IntegrationStore()

	err := store.Save(context.Background(), domain.Integration{UserID: "alice"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func testTransaction(id, msgID string, due time.Time) domain.Transaction {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.Transaction{
		ID:              id,
		UserID:          "alice",
		SourceMessageID: msgID,
		Description:     "Conta " + id,
		Amount:          99.9,
		DueDate:         due,
		Category:        domain.CategoryEnergy,
		Direction:       domain.DirectionExpense,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestTransactionStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t).TransactionStore()
	ctx := context.Background()
	tx := testTransaction("t1", "m1", day(2025, 3, 10))

	require.NoError(t, store.Save(ctx, tx))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Conta t1", got.Description)
	assert.InDelta(t, 99.9, got.Amount, 0.0001)
	assert.Equal(t, "2025-03-10", got.DueDate.Format("2006-01-02"))
	assert.Equal(t, domain.CategoryEnergy, got.Category)
	assert.Equal(t, domain.DirectionExpense, got.Direction)
	assert.False(t, got.Paid)
	assert.Nil(t, got.PaidAt)
}

func TestTransactionStore_GetMissing(t *testing.T) {
	store := setupTestStore(t).TransactionStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionStore_SaveInvalid(t *testing.T) {
	store := setupTestStore(t).TransactionStore()
	tx := testTransaction("t1", "", day(2025, 3, 10))
	tx.Amount = 0

	assert.ErrorIs(t, store.Save(context.Background(), tx), domain.ErrInvalidInput)
}

func TestTransactionStore_Update(t *testing.T) {
	store := setupTestStore(t).TransactionStore()
	ctx := context.Background()
	tx := testTransaction("t1", "m1", day(2025, 3, 10))
	require.NoError(t, store.Save(ctx, tx))

	paidAt := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	tx.Paid = true
	tx.PaidAt = &paidAt
	tx.ReminderEventID = "evt-1"
	require.NoError(t, store.Save(ctx, tx))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, got.Paid)
	require.NotNil(t, got.PaidAt)
	assert.True(t, got.PaidAt.Equal(paidAt))
	assert.Equal(t, "evt-1", got.ReminderEventID)
}

func TestTransactionStore_FindBySourceMessage(t *testing.T) {
	store := setupTestStore(t).TransactionStore()
	ctx := context.Background()
	alice := domain.NewScopeKey("alice", "")
	require.NoError(t, store.Save(ctx, testTransaction("t1", "m1", day(2025, 3, 10))))

	found, err := store.FindBySourceMessage(ctx, alice, "m1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "t1", found.ID)

	found, err = store.FindBySourceMessage(ctx, alice, "m2")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = store.FindBySourceMessage(ctx, domain.NewScopeKey("alice", "acme"), "m1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestTransactionStore_DuplicateMessage(t *testing.T) {
	store := setupTestStore(t).TransactionStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testTransaction("t1", "m1", day(2025, 3, 10))))

	err := store.Save(ctx, testTransaction("t2", "m1", day(2025, 3, 10)))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestTransactionStore_List(t *testing.T) {
	store := setupTestStore(t).TransactionStore()
	ctx := context.Background()
	alice := domain.NewScopeKey("alice", "")

	late := testTransaction("late", "m1", day(2025, 4, 1))
	early := testTransaction("early", "m2", day(2025, 3, 1))
	paid := testTransaction("paid", "m3", day(2025, 2, 1))
	paid.Paid = true
	income := testTransaction("income", "m4", day(2025, 3, 15))
	income.Direction = domain.DirectionIncome
	for _, tx := range []domain.Transaction{late, early, paid, income} {
		require.NoError(t, store.Save(ctx, tx))
	}

	open, err := store.List(ctx, domain.TransactionFilter{Scope: alice})
	require.NoError(t, err)
	require.Len(t, open, 3)
	assert.Equal(t, "early", open[0].ID)
	assert.Equal(t, "income", open[1].ID)
	assert.Equal(t, "late", open[2].ID)

	all, err := store.List(ctx, domain.TransactionFilter{Scope: alice, IncludePaid: true})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "paid", all[0].ID)

	incomes, err := store.List(ctx, domain.TransactionFilter{Scope: alice, Direction: domain.DirectionIncome})
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, "income", incomes[0].ID)

	none, err := store.List(ctx, domain.TransactionFilter{Scope: domain.NewScopeKey("bob", "")})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTransactionStore_Delete(t *testing.T) {
	store := setupTestStore(t).TransactionStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testTransaction("t1", "", day(2025, 3, 10))))

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err := store.Get(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "t1"), domain.ErrNotFound)
}
