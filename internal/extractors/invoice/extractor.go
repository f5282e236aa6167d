package invoice

import (
	"strings"
	"time"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driving"
)

// Ensure Extractor implements the interface.
var _ driving.ExtractionService = (*Extractor)(nil)

// Extractor derives invoice fields using configurable thresholds.
// It is safe for concurrent use.
type Extractor struct {
	settings domain.ExtractionSettings
	now      func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSettings overrides the amount bound and due-soon threshold.
// Non-positive values keep the defaults.
func WithSettings(s domain.ExtractionSettings) Option {
	return func(e *Extractor) {
		if s.MaxAmount > 0 {
			e.settings.MaxAmount = s.MaxAmount
		}
		if s.DueSoonDays > 0 {
			e.settings.DueSoonDays = s.DueSoonDays
		}
	}
}

// WithClock sets the source of "today".
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Extractor with default settings.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		settings: domain.ExtractionSettings{
			MaxAmount:   domain.DefaultMaxAmount,
			DueSoonDays: domain.DefaultDueSoonDays,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settings returns the effective settings.
func (e *Extractor) Settings() domain.ExtractionSettings {
	return e.settings
}

// Extract derives every field for a message.
// Amount and due date are read from the subject and snippet; the sender only
// informs category and direction.
func (e *Extractor) Extract(msg domain.MailMessage) domain.InvoiceFields {
	text := strings.TrimSpace(msg.Subject + " " + msg.Snippet)
	due := e.ExtractDueDate(text)

	return domain.InvoiceFields{
		Amount:    e.ExtractAmount(text),
		DueDate:   due,
		Category:  e.DetectCategory(msg.From, msg.Subject),
		Direction: e.DetectTransactionType(msg.From, msg.Subject, msg.Snippet),
		Urgency:   e.ClassifyUrgency(due),
	}
}

// today returns the current date at midnight in the clock's location.
func (e *Extractor) today() time.Time {
	now := e.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

var std = New()

// Extract derives every field for a message using default settings.
func Extract(msg domain.MailMessage) domain.InvoiceFields {
	return std.Extract(msg)
}

// ExtractAmount finds a monetary amount using default settings. Returns 0 if none.
func ExtractAmount(text string) float64 {
	return std.ExtractAmount(text)
}

// ExtractDueDate finds a due date, defaulting to one month from today.
func ExtractDueDate(text string) time.Time {
	return std.ExtractDueDate(text)
}

// DetectCategory maps sender and subject to a category label.
func DetectCategory(sender, subject string) domain.Category {
	return std.DetectCategory(sender, subject)
}

// DetectTransactionType decides between income and expense.
func DetectTransactionType(sender, subject, snippet string) domain.Direction {
	return std.DetectTransactionType(sender, subject, snippet)
}

// ClassifyUrgency buckets a due date relative to today.
func ClassifyUrgency(dueDate time.Time) domain.Urgency {
	return std.ClassifyUrgency(dueDate)
}
