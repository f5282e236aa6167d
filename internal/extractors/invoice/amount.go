package invoice

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numeral matches a Brazilian-formatted number: "." groups thousands and
// "," separates up to two decimals. Plain digit runs are accepted too.
const numeral = `([0-9]{1,3}(?:\.[0-9]{3})+(?:,[0-9]{1,2})?|[0-9]+(?:,[0-9]{1,2})?)`

type amountRule struct {
	name    string
	pattern *regexp.Regexp
}

// amountRules are evaluated in order. Every match of a rule is tried, left
// to right, before the next rule.
var amountRules = []amountRule{
	{
		name:    "currency",
		pattern: regexp.MustCompile(`(?i)(?:R\$|BRL)\s*` + numeral),
	},
	{
		name:    "labelled",
		pattern: regexp.MustCompile(`(?i)\b(?:valor|total|amount|value)\b[^0-9\n]{0,20}?` + numeral),
	},
	{
		name:    "decimal",
		pattern: regexp.MustCompile(`\b([0-9]{1,3}(?:\.[0-9]{3})*,[0-9]{2})\b`),
	},
}

// ExtractAmount returns the first plausible amount in text, or 0 when none
// is found. Plausible means finite, positive and below the configured bound.
func (e *Extractor) ExtractAmount(text string) float64 {
	for _, rule := range amountRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(text, -1) {
			if v, ok := parseAmount(m[1]); ok && e.plausible(v) {
				return v
			}
		}
	}
	return 0
}

func (e *Extractor) plausible(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 && v < e.settings.MaxAmount
}

// parseAmount converts "1.234,56" to 1234.56.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
