package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contas/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/services"
)

func TestServer_handleExtract(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	t.Run("extracts fields", func(t *testing.T) {
		_, out, err := srv.handleExtract(ctx, nil, ExtractInput{
			From:    "Enel <boleto@enel.com.br>",
			Subject: "Sua conta de energia chegou",
			Snippet: "Valor: R$ 187,45. Vencimento: 03/03/2025.",
		})

		require.NoError(t, err)
		assert.InDelta(t, 187.45, out.Amount, 0.001)
		assert.Equal(t, "R$ 187,45", out.AmountFormatted)
		assert.False(t, out.NeedsAmount)
		assert.Equal(t, "2025-03-03", out.DueDate)
		assert.Equal(t, string(domain.CategoryEnergy), out.Category)
		assert.Equal(t, string(domain.DirectionExpense), out.Direction)
		assert.Equal(t, string(domain.UrgencyDueSoon), out.Urgency)
	})

	t.Run("missing amount is flagged", func(t *testing.T) {
		_, out, err := srv.handleExtract(ctx, nil, ExtractInput{Subject: "Lembrete"})

		require.NoError(t, err)
		assert.True(t, out.NeedsAmount)
		assert.Equal(t, string(domain.CategoryOther), out.Category)
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		_, _, err := srv.handleExtract(ctx, nil, ExtractInput{From: "x@y.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("not connected", func(t *testing.T) {
		srv, _ := newTestServer(t)

		_, out, err := srv.handleStatus(ctx, nil, StatusInput{})

		require.NoError(t, err)
		assert.Equal(t, "ana", out.Scope)
		assert.False(t, out.Connected)
		assert.Empty(t, out.ExpiresAt)
	})

	t.Run("connected", func(t *testing.T) {
		srv, tokens := newTestServer(t)
		expires := time.Now().Add(time.Hour)
		require.NoError(t, tokens.Connect(ctx, domain.Integration{
			UserID:       "ana",
			Provider:     domain.ProviderGoogle,
			AccountEmail: "ana@example.com",
			AccessToken:  "ya29.x",
			ExpiresAt:    &expires,
		}))

		_, out, err := srv.handleStatus(ctx, nil, StatusInput{})

		require.NoError(t, err)
		assert.True(t, out.Connected)
		assert.False(t, out.NeedsReconnection)
		assert.Equal(t, "ana@example.com", out.AccountEmail)
		assert.NotEmpty(t, out.ExpiresAt)
	})

	t.Run("without connection service", func(t *testing.T) {
		srv, err := NewServer(&Ports{Extraction: newExtractor()})
		require.NoError(t, err)

		_, _, err = srv.handleStatus(ctx, nil, StatusInput{})
		assert.ErrorIs(t, err, domain.ErrNotImplemented)
	})
}

func TestServer_handleList(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t,
		transaction("t1", "Luz", fixedNow.AddDate(0, 0, 20), false),
		transaction("t2", "Aluguel", fixedNow.AddDate(0, 0, 2), false),
		transaction("t3", "Internet", fixedNow.AddDate(0, 0, -5), true),
	)

	t.Run("open only by default", func(t *testing.T) {
		_, out, err := srv.handleList(ctx, nil, ListInput{})

		require.NoError(t, err)
		require.Equal(t, 2, out.Count)
		assert.Equal(t, "Aluguel", out.Transactions[0].Description)
		assert.Equal(t, "Luz", out.Transactions[1].Description)
	})

	t.Run("include paid", func(t *testing.T) {
		_, out, err := srv.handleList(ctx, nil, ListInput{IncludePaid: true})

		require.NoError(t, err)
		assert.Equal(t, 3, out.Count)
	})

	t.Run("invalid direction", func(t *testing.T) {
		_, _, err := srv.handleList(ctx, nil, ListInput{Direction: "sideways"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("income only", func(t *testing.T) {
		_, out, err := srv.handleList(ctx, nil, ListInput{Direction: "income"})

		require.NoError(t, err)
		assert.Zero(t, out.Count)
		assert.NotNil(t, out.Transactions)
	})
}

func TestServer_WorkspaceScope(t *testing.T) {
	ctx := context.Background()
	acme := domain.NewScopeKey(testScope.UserID, "acme")

	txStore := memory.NewTransactionStore()
	work := transaction("w1", "Contador", fixedNow.AddDate(0, 0, 5), false)
	work.WorkspaceID = acme.WorkspaceID
	require.NoError(t, txStore.Save(ctx, work))
	require.NoError(t, txStore.Save(ctx, transaction("p1", "Luz", fixedNow.AddDate(0, 0, 5), false)))

	extractor := newExtractor()
	srv, err := NewServer(&Ports{
		Extraction:   extractor,
		Transactions: services.NewTransactionService(txStore, extractor),
		Scope:        acme,
	})
	require.NoError(t, err)

	_, out, err := srv.handleList(ctx, nil, ListInput{})

	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "Contador", out.Transactions[0].Description)
}
