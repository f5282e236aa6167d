package driven

import (
	"context"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// MailSource searches a mailbox for candidate invoice emails.
type MailSource interface {
	// Search returns up to limit messages matching a provider query.
	Search(ctx context.Context, query string, limit int64) ([]domain.MailMessage, error)
}

// ReminderScheduler creates due-date reminders for transactions.
type ReminderScheduler interface {
	// Schedule creates a reminder and returns its provider ID.
	Schedule(ctx context.Context, tx domain.Transaction) (string, error)
}

// LedgerExporter appends transactions to an external ledger.
type LedgerExporter interface {
	// Append writes one row per transaction to the target ledger.
	Append(ctx context.Context, target string, txs []domain.Transaction) error
}

// ConnectorFactory builds provider clients bound to a token provider.
type ConnectorFactory interface {
	MailSource(ctx context.Context, tokens TokenProvider) (MailSource, error)
	Reminders(ctx context.Context, tokens TokenProvider) (ReminderScheduler, error)
	Ledger(ctx context.Context, tokens TokenProvider) (LedgerExporter, error)
}
