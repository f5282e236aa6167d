package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/contas/internal/core/domain"
)

const uriScheme = "contas://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Category labels the extractor can assign",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "transactions/open",
		Name:        "open-transactions",
		Description: "Unpaid transactions ordered by due date",
		MIMEType:    "application/json",
	}, s.handleOpenTransactionsResource)
}

func (s *Server) handleCategoriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, domain.AllCategories())
}

func (s *Server) handleOpenTransactionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Transactions == nil {
		return jsonResource(req.Params.URI, []TransactionOutput{})
	}

	views, err := s.ports.Transactions.List(ctx, domain.TransactionFilter{Scope: s.ports.Scope})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	out := make([]TransactionOutput, len(views))
	for i := range views {
		out[i] = toTransactionOutput(views[i])
	}
	return jsonResource(req.Params.URI, out)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
