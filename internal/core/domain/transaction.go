package domain

import (
	"strings"
	"time"
)

// Transaction is a confirmed income or expense record.
type Transaction struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`
	// UserID and WorkspaceID mirror the scope the transaction was imported under.
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id,omitempty"`

	// SourceMessageID is the Gmail message the transaction came from, if any.
	SourceMessageID string `json:"source_message_id,omitempty"`

	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	DueDate     time.Time `json:"due_date"`
	Category    Category  `json:"category"`
	Direction   Direction `json:"direction"`

	// Paid is set once the bill has been settled.
	Paid   bool       `json:"paid"`
	PaidAt *time.Time `json:"paid_at,omitempty"`

	// ReminderEventID is the calendar event created for the due date.
	ReminderEventID string `json:"reminder_event_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Scope returns the scope the transaction belongs to.
func (t *Transaction) Scope() ScopeKey {
	return ScopeKey{UserID: t.UserID, WorkspaceID: t.WorkspaceID}
}

// Validate checks the fields a stored transaction must have.
func (t *Transaction) Validate() error {
	if t.ID == "" || t.UserID == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrInvalidInput
	}
	if t.Amount <= 0 || !t.Direction.IsValid() {
		return ErrInvalidInput
	}
	if t.DueDate.IsZero() {
		return ErrInvalidInput
	}
	return nil
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	Scope ScopeKey
	// IncludePaid includes settled transactions when true.
	IncludePaid bool
	// Direction limits results to one direction when set.
	Direction Direction
}

// TransactionView is a transaction with its urgency computed for today.
type TransactionView struct {
	Transaction
	Urgency Urgency `json:"urgency"`
}
