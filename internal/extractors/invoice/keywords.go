package invoice

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lowercases s and strips combining marks so "Água" matches "agua".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// keywordSet matches whole words or phrases against folded text.
type keywordSet struct {
	words   []string
	pattern *regexp.Regexp
}

// newKeywordSet compiles folded keywords into a single word-bounded
// alternation. Spaces inside a phrase match any run of whitespace.
// The zero keywordSet matches nothing.
func newKeywordSet(words ...string) keywordSet {
	if len(words) == 0 {
		return keywordSet{}
	}
	alts := make([]string, 0, len(words))
	for _, w := range words {
		parts := strings.Fields(fold(w))
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		alts = append(alts, strings.Join(parts, `\s+`))
	}
	return keywordSet{
		words:   words,
		pattern: regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`),
	}
}

// match reports whether folded contains any keyword.
func (k keywordSet) match(folded string) bool {
	if k.pattern == nil || folded == "" {
		return false
	}
	return k.pattern.MatchString(folded)
}
