package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
)

// dueDateLayout stores due dates as calendar days so ordering is lexical.
const dueDateLayout = "2006-01-02"

// transactionStore implements driven.TransactionStore.
type transactionStore struct {
	store *Store
}

var _ driven.TransactionStore = (*transactionStore)(nil)

const transactionColumns = `id, user_id, workspace_id, source_message_id, description, amount,
	due_date, category, direction, paid, paid_at, reminder_event_id, created_at, updated_at`

// Save stores or updates a transaction.
func (s *transactionStore) Save(ctx context.Context, tx domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			description = excluded.description,
			amount = excluded.amount,
			due_date = excluded.due_date,
			category = excluded.category,
			direction = excluded.direction,
			paid = excluded.paid,
			paid_at = excluded.paid_at,
			reminder_event_id = excluded.reminder_event_id,
			updated_at = excluded.updated_at
	`, tx.ID, tx.UserID, tx.WorkspaceID, tx.SourceMessageID, tx.Description, tx.Amount,
		tx.DueDate.Format(dueDateLayout), string(tx.Category), string(tx.Direction),
		tx.Paid, tx.PaidAt, tx.ReminderEventID, tx.CreatedAt, tx.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: message %s already imported", domain.ErrAlreadyExists, tx.SourceMessageID)
		}
		return fmt.Errorf("saving transaction: %w", err)
	}
	return nil
}

// Get retrieves a transaction by ID.
func (s *transactionStore) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = ?
	`, id)
	return scanTransaction(row)
}

// FindBySourceMessage returns the transaction imported from messageID, or nil.
func (s *transactionStore) FindBySourceMessage(
	ctx context.Context,
	scope domain.ScopeKey,
	messageID string,
) (*domain.Transaction, error) {
	if messageID == "" {
		return nil, nil
	}
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = ? AND workspace_id = ? AND source_message_id = ?
	`, scope.UserID, scope.WorkspaceID, messageID)

	tx, err := scanTransaction(row)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return tx, err
}

// List returns matching transactions ordered by due date, then description.
func (s *transactionStore) List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = ? AND workspace_id = ?`
	args := []any{filter.Scope.UserID, filter.Scope.WorkspaceID}
	if !filter.IncludePaid {
		query += ` AND paid = 0`
	}
	if filter.Direction != "" {
		query += ` AND direction = ?`
		args = append(args, string(filter.Direction))
	}
	query += ` ORDER BY due_date ASC, description ASC`

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return txs, nil
}

// Delete removes a transaction.
func (s *transactionStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanTransaction scans a single transaction row.
func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var dueDate, category, direction string
	var paidAt sql.NullTime

	if err := row.Scan(&tx.ID, &tx.UserID, &tx.WorkspaceID, &tx.SourceMessageID, &tx.Description,
		&tx.Amount, &dueDate, &category, &direction, &tx.Paid, &paidAt, &tx.ReminderEventID,
		&tx.CreatedAt, &tx.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning transaction: %w", err)
	}

	due, err := time.ParseInLocation(dueDateLayout, dueDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parsing due date %q: %w", dueDate, err)
	}
	tx.DueDate = due
	tx.Category = domain.Category(category)
	tx.Direction = domain.Direction(direction)
	if paidAt.Valid {
		t := paidAt.Time
		tx.PaidAt = &t
	}

	return &tx, nil
}
