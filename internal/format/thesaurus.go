package format

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ThesaurusFormatter resolves a controlled-vocabulary label or URI to a
// stable normalized token: the URI's last path segment (or the label
// itself) lowercased, unaccented, with runs of non-alphanumerics collapsed
// to single underscores.
type ThesaurusFormatter struct{}

// unaccent strips combining marks after canonical decomposition.
var unaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Format implements Formatter.
func (ThesaurusFormatter) Format(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	// URIs resolve to their terminal segment (path or fragment).
	if strings.Contains(s, "://") {
		if i := strings.LastIndexAny(s, "/#"); i >= 0 && i < len(s)-1 {
			s = s[i+1:]
		}
	}

	if folded, _, err := transform.String(unaccent, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := true // trims leading separators
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	token := strings.TrimSuffix(b.String(), "_")
	if token == "" {
		return "", false
	}
	return token, true
}
