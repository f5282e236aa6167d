package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/extractors/invoice"
)

const dateLayout = "2006-01-02"

// ExtractInput is the input schema for the extract_invoice tool.
type ExtractInput struct {
	Subject string `json:"subject" jsonschema:"email subject line"`
	Snippet string `json:"snippet,omitempty" jsonschema:"email body preview"`
	From    string `json:"from,omitempty" jsonschema:"sender address or display name"`
}

// ExtractOutput is the output schema for the extract_invoice tool.
type ExtractOutput struct {
	Amount          float64 `json:"amount"`
	AmountFormatted string  `json:"amount_formatted"`
	NeedsAmount     bool    `json:"needs_amount"`
	DueDate         string  `json:"due_date"`
	Category        string  `json:"category"`
	Direction       string  `json:"direction"`
	Urgency         string  `json:"urgency"`
	UrgencyLabel    string  `json:"urgency_label"`
	DaysUntilDue    int     `json:"days_until_due"`
}

// StatusInput is the (empty) input schema for the connection_status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the connection_status tool.
type StatusOutput struct {
	Scope             string `json:"scope"`
	Connected         bool   `json:"connected"`
	NeedsReconnection bool   `json:"needs_reconnection"`
	AccountEmail      string `json:"account_email,omitempty"`
	ExpiresAt         string `json:"expires_at,omitempty"`
}

// ListInput is the input schema for the list_transactions tool.
type ListInput struct {
	IncludePaid bool   `json:"include_paid,omitempty" jsonschema:"include settled transactions"`
	Direction   string `json:"direction,omitempty" jsonschema:"expense or income; empty lists both"`
}

// ListOutput is the output schema for the list_transactions tool.
type ListOutput struct {
	Transactions []TransactionOutput `json:"transactions"`
	Count        int                 `json:"count"`
}

// TransactionOutput is a single listed transaction.
type TransactionOutput struct {
	ID           string  `json:"id"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	DueDate      string  `json:"due_date"`
	Category     string  `json:"category"`
	Direction    string  `json:"direction"`
	Paid         bool    `json:"paid"`
	Urgency      string  `json:"urgency"`
	UrgencyLabel string  `json:"urgency_label"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_invoice",
		Description: "Extract amount, due date, category and direction from invoice email text",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "connection_status",
		Description: "Report whether the Google account is connected or needs reconnection",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_transactions",
		Description: "List stored bills and incomes with their payment urgency",
	}, s.handleList)
}

func (s *Server) handleExtract(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	if input.Subject == "" && input.Snippet == "" {
		return nil, ExtractOutput{}, fmt.Errorf("%w: subject or snippet is required", domain.ErrInvalidInput)
	}

	fields := s.ports.Extraction.Extract(domain.MailMessage{
		From:    input.From,
		Subject: input.Subject,
		Snippet: input.Snippet,
	})

	return nil, ExtractOutput{
		Amount:          fields.Amount,
		AmountFormatted: invoice.FormatAmount(fields.Amount),
		NeedsAmount:     fields.NeedsAmount(),
		DueDate:         fields.DueDate.Format(dateLayout),
		Category:        string(fields.Category),
		Direction:       string(fields.Direction),
		Urgency:         string(fields.Urgency.Status),
		UrgencyLabel:    fields.Urgency.Label,
		DaysUntilDue:    fields.Urgency.DaysUntilDue,
	}, nil
}

func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	if s.ports.Connections == nil {
		return nil, StatusOutput{}, domain.ErrNotImplemented
	}

	status, err := s.ports.Connections.Status(ctx, s.ports.Scope)
	if err != nil {
		return nil, StatusOutput{}, err
	}

	out := StatusOutput{
		Scope:             status.Scope.String(),
		Connected:         status.Connected,
		NeedsReconnection: status.NeedsReconnection,
		AccountEmail:      status.AccountEmail,
	}
	if status.ExpiresAt != nil {
		out.ExpiresAt = status.ExpiresAt.Format(time.RFC3339)
	}
	return nil, out, nil
}

func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	if s.ports.Transactions == nil {
		return nil, ListOutput{}, domain.ErrNotImplemented
	}

	direction := domain.Direction(input.Direction)
	if direction != "" && !direction.IsValid() {
		return nil, ListOutput{}, fmt.Errorf("%w: direction %q", domain.ErrInvalidInput, input.Direction)
	}

	views, err := s.ports.Transactions.List(ctx, domain.TransactionFilter{
		Scope:       s.ports.Scope,
		IncludePaid: input.IncludePaid,
		Direction:   direction,
	})
	if err != nil {
		return nil, ListOutput{}, err
	}

	out := ListOutput{
		Transactions: make([]TransactionOutput, len(views)),
		Count:        len(views),
	}
	for i := range views {
		out.Transactions[i] = toTransactionOutput(views[i])
	}
	return nil, out, nil
}

func toTransactionOutput(v domain.TransactionView) TransactionOutput {
	return TransactionOutput{
		ID:           v.ID,
		Description:  v.Description,
		Amount:       v.Amount,
		DueDate:      v.DueDate.Format(dateLayout),
		Category:     string(v.Category),
		Direction:    string(v.Direction),
		Paid:         v.Paid,
		Urgency:      string(v.Urgency.Status),
		UrgencyLabel: v.Urgency.Label,
	}
}
