package format

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// solrInstant is Solr's canonical date representation (UTC, Zulu suffix).
const solrInstant = "2006-01-02T15:04:05Z"

// DateFormatter normalizes free-form date text to Solr's canonical
// instant. Bare years and year-month values are anchored to their first
// instant so they remain range-comparable.
type DateFormatter struct{}

// Format implements Formatter.
func (DateFormatter) Format(raw string) (string, bool) {
	t, ok := parseDate(strings.TrimSpace(raw))
	if !ok {
		return "", false
	}
	return t.UTC().Format(solrInstant), true
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	// dateparse rejects partial dates like "1984" or "1984-06"; anchor
	// them by hand before falling back to the general parser.
	if t, err := time.Parse("2006", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, true
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateRangeFormatter parses a textual interval into Solr's range-query
// bounds: "start TO end", with an open side expressed as "*". Accepted
// separators are "/" (ISO 8601 intervals) and " TO "; an empty or ".."
// side is open, and an entirely empty value is open on both sides. A bare
// date is treated as a closed single-point range.
type DateRangeFormatter struct{}

// openBound marks an unbounded interval side in the native syntax.
const openBound = "*"

// Format implements Formatter.
func (DateRangeFormatter) Format(raw string) (string, bool) {
	start, end, ok := splitInterval(strings.TrimSpace(raw))
	if !ok {
		return "", false
	}
	return formatBound(start) + " TO " + formatBound(end), true
}

func splitInterval(s string) (start, end string, ok bool) {
	if s == "" {
		return "", "", true
	}
	if before, after, found := strings.Cut(s, " TO "); found {
		return strings.TrimSpace(before), strings.TrimSpace(after), true
	}
	if before, after, found := strings.Cut(s, "/"); found {
		return strings.TrimSpace(before), strings.TrimSpace(after), true
	}
	return s, s, true
}

func formatBound(s string) string {
	if s == "" || s == ".." || s == openBound {
		return openBound
	}
	return s
}
