package invoice

import (
	"strings"

	"github.com/custodia-labs/contas/internal/core/domain"
)

// incomeKeywords mark money coming in. Bare "credit" is left out so card
// bills ("cartão de crédito", "credit card") stay expenses.
var incomeKeywords = newKeywordSet(
	"pagamento recebido", "você recebeu", "recebeu um pix", "pix recebido",
	"transferência recebida", "depósito", "crédito em conta", "creditado",
	"reembolso", "payment received", "you received", "deposit", "credited",
	"refund",
)

// DetectTransactionType reports income when any income phrase appears in
// the sender, subject or snippet. Everything else is an expense.
func (e *Extractor) DetectTransactionType(sender, subject, snippet string) domain.Direction {
	folded := fold(strings.Join([]string{sender, subject, snippet}, " "))
	if incomeKeywords.match(folded) {
		return domain.DirectionIncome
	}
	return domain.DirectionExpense
}
