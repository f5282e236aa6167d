package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/core/ports/driving"
	"github.com/custodia-labs/contas/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// TokenProviders hands out scope-bound token providers.
// Implemented by *TokenCache.
type TokenProviders interface {
	ForScope(scope domain.ScopeKey) driven.TokenProvider
}

// ImportService turns invoice emails into stored transactions.
type ImportService struct {
	tokens       TokenProviders
	connectors   driven.ConnectorFactory
	extractor    driving.ExtractionService
	transactions driven.TransactionStore
	gmail        domain.GmailSettings
	now          func() time.Time
}

// NewImportService creates a new import service.
func NewImportService(
	tokens TokenProviders,
	connectors driven.ConnectorFactory,
	extractor driving.ExtractionService,
	transactions driven.TransactionStore,
	gmail domain.GmailSettings,
) *ImportService {
	if gmail.Query == "" {
		gmail.Query = domain.DefaultGmailQuery
	}
	if gmail.MaxResults <= 0 {
		gmail.MaxResults = domain.DefaultGmailMaxResults
	}
	return &ImportService{
		tokens:       tokens,
		connectors:   connectors,
		extractor:    extractor,
		transactions: transactions,
		gmail:        gmail,
		now:          time.Now,
	}
}

// Preview searches the mailbox and extracts a draft per message.
// Messages already imported for the scope are left out.
func (s *ImportService) Preview(
	ctx context.Context,
	scope domain.ScopeKey,
	query string,
	limit int64,
) ([]domain.InvoiceDraft, error) {
	if s.tokens == nil || s.connectors == nil || s.extractor == nil || s.transactions == nil {
		return nil, domain.ErrNotImplemented
	}
	if query == "" {
		query = s.gmail.Query
	}
	if limit <= 0 {
		limit = s.gmail.MaxResults
	}

	logger.Section("Import preview")
	logger.Debug("query=%q limit=%d scope=%s", query, limit, scope)

	mail, err := s.connectors.MailSource(ctx, s.tokens.ForScope(scope))
	if err != nil {
		return nil, fmt.Errorf("open mailbox: %w", err)
	}
	messages, err := mail.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search mailbox: %w", err)
	}

	drafts := make([]domain.InvoiceDraft, 0, len(messages))
	for _, msg := range messages {
		existing, err := s.transactions.FindBySourceMessage(ctx, scope, msg.ID)
		if err != nil {
			return nil, fmt.Errorf("check message %s: %w", msg.ID, err)
		}
		if existing != nil {
			logger.Debug("message %s already imported as %s", msg.ID, existing.ID)
			continue
		}
		fields := s.extractor.Extract(msg)
		logger.Debug("message %s: amount=%.2f due=%s category=%s direction=%s",
			msg.ID, fields.Amount, fields.DueDate.Format("2006-01-02"), fields.Category, fields.Direction)
		drafts = append(drafts, domain.InvoiceDraft{Message: msg, Fields: fields})
	}

	logger.Info("%d of %d messages ready for review", len(drafts), len(messages))
	return drafts, nil
}

// Confirm stores the drafts as transactions. Drafts without an amount or
// whose message was already imported are skipped. Reminder and ledger
// failures are reported as warnings and never undo stored transactions.
func (s *ImportService) Confirm(
	ctx context.Context,
	scope domain.ScopeKey,
	drafts []domain.InvoiceDraft,
	opts driving.ConfirmOptions,
) (*driving.ImportResult, error) {
	if s.transactions == nil {
		return nil, domain.ErrNotImplemented
	}

	result := &driving.ImportResult{}
	var reminders driven.ReminderScheduler
	remindersReady := false

	for _, draft := range drafts {
		msgID := draft.Message.ID
		if draft.Fields.NeedsAmount() || draft.Fields.Amount < 0 {
			result.Skipped = append(result.Skipped, msgID)
			continue
		}
		if msgID != "" {
			existing, err := s.transactions.FindBySourceMessage(ctx, scope, msgID)
			if err != nil {
				return result, fmt.Errorf("check message %s: %w", msgID, err)
			}
			if existing != nil {
				result.Skipped = append(result.Skipped, msgID)
				continue
			}
		}

		tx := s.newTransaction(scope, draft)
		if err := tx.Validate(); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("message %s: %v", msgID, err))
			result.Skipped = append(result.Skipped, msgID)
			continue
		}
		if err := s.transactions.Save(ctx, tx); err != nil {
			return result, fmt.Errorf("save transaction: %w", err)
		}

		if opts.Reminders {
			if !remindersReady {
				remindersReady = true
				r, err := s.openReminders(ctx, scope)
				if err != nil {
					result.Warnings = append(result.Warnings, fmt.Sprintf("reminders disabled: %v", err))
				}
				reminders = r
			}
			if reminders != nil {
				s.schedule(ctx, reminders, &tx, result)
			}
		}

		result.Imported = append(result.Imported, tx)
	}

	if opts.SpreadsheetID != "" && len(result.Imported) > 0 {
		if err := s.export(ctx, scope, opts.SpreadsheetID, result.Imported); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("sheet export failed: %v", err))
		}
	}

	logger.Info("imported %d, skipped %d, warnings %d",
		len(result.Imported), len(result.Skipped), len(result.Warnings))
	return result, nil
}

func (s *ImportService) newTransaction(scope domain.ScopeKey, draft domain.InvoiceDraft) domain.Transaction {
	now := s.now()
	fields := draft.Fields

	category := fields.Category
	if !category.IsValid() {
		category = domain.CategoryOther
	}
	direction := fields.Direction
	if !direction.IsValid() {
		direction = domain.DirectionExpense
	}

	return domain.Transaction{
		ID:              uuid.NewString(),
		UserID:          scope.UserID,
		WorkspaceID:     scope.WorkspaceID,
		SourceMessageID: draft.Message.ID,
		Description:     describe(draft.Message),
		Amount:          fields.Amount,
		DueDate:         fields.DueDate,
		Category:        category,
		Direction:       direction,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// describe picks a human label for a message: subject, then sender.
func describe(msg domain.MailMessage) string {
	if s := strings.TrimSpace(msg.Subject); s != "" {
		return s
	}
	if s := strings.TrimSpace(msg.From); s != "" {
		return s
	}
	return "(sem assunto)"
}

func (s *ImportService) openReminders(ctx context.Context, scope domain.ScopeKey) (driven.ReminderScheduler, error) {
	if s.connectors == nil || s.tokens == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.connectors.Reminders(ctx, s.tokens.ForScope(scope))
}

func (s *ImportService) schedule(
	ctx context.Context,
	reminders driven.ReminderScheduler,
	tx *domain.Transaction,
	result *driving.ImportResult,
) {
	eventID, err := reminders.Schedule(ctx, *tx)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("reminder for %q: %v", tx.Description, err))
		return
	}
	tx.ReminderEventID = eventID
	tx.UpdatedAt = s.now()
	if err := s.transactions.Save(ctx, *tx); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("record reminder for %q: %v", tx.Description, err))
	}
}

func (s *ImportService) export(
	ctx context.Context,
	scope domain.ScopeKey,
	spreadsheetID string,
	txs []domain.Transaction,
) error {
	if s.connectors == nil || s.tokens == nil {
		return domain.ErrNotImplemented
	}
	ledger, err := s.connectors.Ledger(ctx, s.tokens.ForScope(scope))
	if err != nil {
		return err
	}
	return ledger.Append(ctx, spreadsheetID, txs)
}
