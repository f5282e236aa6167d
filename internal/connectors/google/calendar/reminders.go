// Package calendar schedules due-date reminders as Google Calendar events.
package calendar

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/contas/internal/connectors/google"
	gmailconn "github.com/custodia-labs/contas/internal/connectors/google/gmail"
	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/extractors/invoice"
)

const (
	dateLayout = "2006-01-02"
	// reminderMinutes fires the popup the day before an all-day event.
	reminderMinutes = 24 * 60
)

// Verify interface compliance.
var _ driven.ReminderScheduler = (*Reminders)(nil)

// Reminders implements driven.ReminderScheduler with all-day events.
type Reminders struct {
	svc        *calendar.Service
	calendarID string
	limiter    *google.RateLimiter
}

// NewReminders creates a scheduler writing to calendarID ("primary" when empty).
func NewReminders(svc *calendar.Service, calendarID string) *Reminders {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Reminders{
		svc:        svc,
		calendarID: calendarID,
		limiter:    google.NewRateLimiter(google.ServiceCalendar),
	}
}

// Schedule creates an all-day event on the due date and returns its ID.
func (r *Reminders) Schedule(ctx context.Context, tx domain.Transaction) (string, error) {
	if tx.DueDate.IsZero() {
		return "", fmt.Errorf("%w: transaction has no due date", domain.ErrInvalidInput)
	}

	event := Event(tx)
	var created *calendar.Event
	err := r.limiter.Do(ctx, func() error {
		var err error
		created, err = r.svc.Events.Insert(r.calendarID, event).Context(ctx).Do()
		return err
	})
	if err != nil {
		return "", fmt.Errorf("create reminder event: %w", err)
	}
	return created.Id, nil
}

// Event builds the all-day reminder event for tx.
func Event(tx domain.Transaction) *calendar.Event {
	due := tx.DueDate
	verb := "Pagar"
	if tx.Direction == domain.DirectionIncome {
		verb = "Receber"
	}

	lines := []string{
		fmt.Sprintf("Valor: %s", invoice.FormatAmount(tx.Amount)),
		fmt.Sprintf("Categoria: %s", tx.Category),
	}
	if link := gmailconn.WebURL(tx.SourceMessageID); link != "" {
		lines = append(lines, "E-mail: "+link)
	}

	return &calendar.Event{
		Summary:      fmt.Sprintf("%s: %s (%s)", verb, tx.Description, invoice.FormatAmount(tx.Amount)),
		Description:  strings.Join(lines, "\n"),
		Start:        &calendar.EventDateTime{Date: due.Format(dateLayout)},
		End:          &calendar.EventDateTime{Date: due.AddDate(0, 0, 1).Format(dateLayout)},
		Transparency: "transparent",
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       []*calendar.EventReminder{{Method: "popup", Minutes: reminderMinutes}},
			ForceSendFields: []string{"UseDefault"},
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{"contas_transaction_id": tx.ID},
		},
	}
}
