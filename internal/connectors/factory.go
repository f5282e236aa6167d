package connectors

import (
	"context"

	"google.golang.org/api/option"

	"github.com/custodia-labs/contas/internal/connectors/google"
	"github.com/custodia-labs/contas/internal/connectors/google/calendar"
	"github.com/custodia-labs/contas/internal/connectors/google/gmail"
	"github.com/custodia-labs/contas/internal/connectors/google/sheets"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ConnectorFactory = (*GoogleFactory)(nil)

// GoogleFactory implements driven.ConnectorFactory for Google Workspace.
type GoogleFactory struct {
	calendarID string
	opts       []option.ClientOption
}

// NewGoogleFactory creates a factory. Reminders go to calendarID; opts are
// passed to every Google API client.
func NewGoogleFactory(calendarID string, opts ...option.ClientOption) *GoogleFactory {
	return &GoogleFactory{calendarID: calendarID, opts: opts}
}

// MailSource returns a Gmail search client.
func (f *GoogleFactory) MailSource(ctx context.Context, tokens driven.TokenProvider) (driven.MailSource, error) {
	svc, err := google.NewGmailService(ctx, google.NewTokenSource(ctx, tokens), f.opts...)
	if err != nil {
		return nil, err
	}
	return gmail.NewSource(svc), nil
}

// Reminders returns a Calendar reminder scheduler.
func (f *GoogleFactory) Reminders(ctx context.Context, tokens driven.TokenProvider) (driven.ReminderScheduler, error) {
	svc, err := google.NewCalendarService(ctx, google.NewTokenSource(ctx, tokens), f.opts...)
	if err != nil {
		return nil, err
	}
	return calendar.NewReminders(svc, f.calendarID), nil
}

// Ledger returns a Sheets ledger exporter.
func (f *GoogleFactory) Ledger(ctx context.Context, tokens driven.TokenProvider) (driven.LedgerExporter, error) {
	svc, err := google.NewSheetsService(ctx, google.NewTokenSource(ctx, tokens), f.opts...)
	if err != nil {
		return nil, err
	}
	return sheets.NewLedger(svc, ""), nil
}
