package invoice

import (
	"regexp"
	"strconv"
	"time"
)

// datePattern captures day, month and a two- or four-digit year.
const datePattern = `(\d{1,2})[/-](\d{1,2})[/-](\d{4}|\d{2})\b`

// dueDateRules run from most to least specific. Within a rule every match
// is tried in order; one that does not form a real calendar date is skipped.
var dueDateRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:data\s+de\s+vencimento|vencimento|vence\s+em|due\s+date|due\s+on|due)\s*:?\s*` + datePattern),
	regexp.MustCompile(`(?i)\b(?:venc|vcto|vto)\.?\s*:?\s*` + datePattern),
	regexp.MustCompile(`\b` + datePattern),
}

// ExtractDueDate returns the first valid DD/MM/YYYY (or DD-MM-YY) date in
// text. When nothing matches it returns today plus one calendar month, with
// the day clamped to the end of the target month.
func (e *Extractor) ExtractDueDate(text string) time.Time {
	today := e.today()

	for _, rule := range dueDateRules {
		for _, m := range rule.FindAllStringSubmatch(text, -1) {
			if d, ok := buildDate(m[1], m[2], m[3], today.Location()); ok {
				return d
			}
		}
	}
	return addMonth(today)
}

func buildDate(day, month, year string, loc *time.Location) (time.Time, bool) {
	if len(year) == 2 {
		year = "20" + year
	}
	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errD != nil || errM != nil || errY != nil {
		return time.Time{}, false
	}
	if m < 1 || m > 12 || d < 1 {
		return time.Time{}, false
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	// time.Date normalises 31/02 into March; reject instead.
	if t.Day() != d || t.Month() != time.Month(m) {
		return time.Time{}, false
	}
	return t, true
}

// addMonth moves t one calendar month forward, clamping 31/01 to 28/02 (or
// 29/02) rather than spilling into March.
func addMonth(t time.Time) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
