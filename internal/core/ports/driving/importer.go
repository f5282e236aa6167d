package driving

import (
	"context"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// ConfirmOptions controls side effects of confirming drafts.
type ConfirmOptions struct {
	// Reminders creates a calendar reminder per transaction.
	Reminders bool
	// SpreadsheetID appends the transactions to a sheet when set.
	SpreadsheetID string
}

// ImportResult reports what Confirm did.
type ImportResult struct {
	Imported []domain.Transaction
	// Skipped holds message IDs that were already imported or had no amount.
	Skipped []string
	// Warnings are non-fatal failures of optional side effects.
	Warnings []string
}

// ImportService turns invoice emails into transactions.
type ImportService interface {
	// Preview searches the mailbox and extracts a draft per message.
	Preview(ctx context.Context, scope domain.ScopeKey, query string, limit int64) ([]domain.InvoiceDraft, error)

	// Confirm stores the drafts as transactions.
	Confirm(
		ctx context.Context,
		scope domain.ScopeKey,
		drafts []domain.InvoiceDraft,
		opts ConfirmOptions,
	) (*ImportResult, error)
}
