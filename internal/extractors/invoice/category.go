package invoice

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/contas/internal/core/domain"
)

type categoryRule struct {
	category domain.Category
	keywords keywordSet
	// hosts are brand names that are also everyday words ("oi", "claro").
	// They only match the sender's email domain.
	hosts keywordSet
}

// categoryRules are checked in order; the first bucket with a hit wins.
// Provider names come before generic terms within each bucket.
var categoryRules = []categoryRule{
	{domain.CategoryEnergy, newKeywordSet(
		"enel", "cemig", "copel", "celesc", "coelba", "cpfl",
		"equatorial", "neoenergia", "energisa", "eletropaulo",
		"energia", "conta de luz",
	), newKeywordSet("light")},
	{domain.CategoryWater, newKeywordSet(
		"sabesp", "cedae", "copasa", "sanepar", "embasa", "caesb",
		"água", "saneamento",
	), keywordSet{}},
	{domain.CategoryGas, newKeywordSet(
		"comgás", "naturgy", "gás",
	), keywordSet{}},
	{domain.CategoryTelecom, newKeywordSet(
		"nextel", "algar", "internet", "telefone", "telefonia", "celular",
		"banda larga", "fibra",
	), newKeywordSet("vivo", "claro", "tim", "oi", "sky")},
	{domain.CategoryHousing, newKeywordSet(
		"aluguel", "condomínio", "iptu", "imobiliária", "quintoandar",
		"rent", "condo",
	), keywordSet{}},
	{domain.CategoryCreditCard, newKeywordSet(
		"fatura", "cartão", "nubank", "itaucard", "credit card",
		"mastercard", "visa", "amex",
	), keywordSet{}},
	{domain.CategoryInsurance, newKeywordSet(
		"seguro", "seguradora", "insurance", "sulamérica",
	), keywordSet{}},
	{domain.CategoryEducation, newKeywordSet(
		"escola", "faculdade", "universidade", "mensalidade", "curso",
		"colégio", "tuition",
	), keywordSet{}},
	{domain.CategoryIncome, newKeywordSet(
		"pix recebido", "você recebeu", "depósito", "transferência recebida",
		"crédito em conta", "payment received", "you received",
	), keywordSet{}},
}

// DetectCategory returns the first category whose keywords appear in the
// sender or subject, falling back to Outros.
func (e *Extractor) DetectCategory(sender, subject string) domain.Category {
	folded := fold(sender + " " + subject)
	host := senderHost(sender)
	for _, rule := range categoryRules {
		if rule.keywords.match(folded) || rule.hosts.match(host) {
			return rule.category
		}
	}
	return domain.CategoryOther
}

// senderHost returns the folded domain of the sender's address, or "".
// "Claro <fatura@claro.com.br>" yields "claro.com.br".
func senderHost(sender string) string {
	at := strings.LastIndex(sender, "@")
	if at < 0 {
		return ""
	}
	host := sender[at+1:]
	if end := strings.IndexFunc(host, func(r rune) bool {
		return r == '>' || unicode.IsSpace(r)
	}); end >= 0 {
		host = host[:end]
	}
	return fold(host)
}
