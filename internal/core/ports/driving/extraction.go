package driving

import (
	"time"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// ExtractionService derives invoice fields from free-form email text.
// Every method is total: misses resolve to documented defaults.
type ExtractionService interface {
	// Extract derives all fields for a message.
	Extract(msg domain.MailMessage) domain.InvoiceFields

	// ClassifyUrgency buckets a due date relative to today.
	ClassifyUrgency(dueDate time.Time) domain.Urgency
}
