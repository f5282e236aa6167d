package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contas/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleCategoriesResource(t *testing.T) {
	srv, _ := newTestServer(t)

	res, err := srv.handleCategoriesResource(context.Background(), readRequest(uriScheme+"categories"))

	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)

	var got []domain.Category
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &got))
	assert.Equal(t, domain.AllCategories(), got)
}

func TestServer_handleOpenTransactionsResource(t *testing.T) {
	t.Run("lists unpaid", func(t *testing.T) {
		srv, _ := newTestServer(t,
			transaction("t1", "Luz", fixedNow, false),
			transaction("t2", "Água", fixedNow, true),
		)

		res, err := srv.handleOpenTransactionsResource(context.Background(),
			readRequest(uriScheme+"transactions/open"))

		require.NoError(t, err)
		var got []TransactionOutput
		require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "t1", got[0].ID)
		assert.Equal(t, "2025-03-01", got[0].DueDate)
	})

	t.Run("no transaction service", func(t *testing.T) {
		srv, err := NewServer(&Ports{Extraction: newExtractor()})
		require.NoError(t, err)

		res, err := srv.handleOpenTransactionsResource(context.Background(),
			readRequest(uriScheme+"transactions/open"))

		require.NoError(t, err)
		assert.Equal(t, "[]", res.Contents[0].Text)
	})
}
