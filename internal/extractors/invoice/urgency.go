package invoice

import (
	"fmt"
	"time"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// ClassifyUrgency compares the calendar date of dueDate with today.
// Negative differences are overdue, 0..DueSoonDays are due soon and
// anything later is pending.
func (e *Extractor) ClassifyUrgency(dueDate time.Time) domain.Urgency {
	days := daysBetween(e.today(), dueDate)

	switch {
	case days < 0:
		return domain.Urgency{
			Status:       domain.UrgencyOverdue,
			Label:        fmt.Sprintf("Vencida há %d %s", -days, pluralDays(-days)),
			DaysUntilDue: days,
		}
	case days == 0:
		return domain.Urgency{Status: domain.UrgencyDueSoon, Label: "Vence hoje"}
	case days <= e.settings.DueSoonDays:
		return domain.Urgency{
			Status:       domain.UrgencyDueSoon,
			Label:        fmt.Sprintf("Vence em %d %s", days, pluralDays(days)),
			DaysUntilDue: days,
		}
	default:
		return domain.Urgency{
			Status:       domain.UrgencyPending,
			Label:        "Pendente",
			DaysUntilDue: days,
		}
	}
}

// daysBetween counts whole calendar days from a to b, ignoring clock time
// and daylight-saving shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func pluralDays(n int) string {
	if n == 1 {
		return "dia"
	}
	return "dias"
}
