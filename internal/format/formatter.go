// Package format normalizes raw extracted values into index-native
// representations. Formatters follow the pipeline's failure policy: a
// value that cannot be coerced is dropped, never an error.
package format

import (
	"strconv"
	"strings"
)

// Formatter coerces one raw value. ok=false drops the value.
type Formatter interface {
	Format(raw string) (value string, ok bool)
}

// Built-in formatter names, matching the "formatter" mapping setting.
const (
	NameText      = "text"
	NameInteger   = "integer"
	NameDate      = "date"
	NameDateRange = "date_range"
	NamePoint     = "point"
	NamePlace     = "place"
	NameThesaurus = "thesaurus"
)

// Registry dispatches formatters by declared name.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry builds a registry with every built-in registered.
func NewRegistry() *Registry {
	r := &Registry{formatters: map[string]Formatter{}}
	r.Register(NameText, TextFormatter{})
	r.Register(NameInteger, IntegerFormatter{})
	r.Register(NameDate, DateFormatter{})
	r.Register(NameDateRange, DateRangeFormatter{})
	r.Register(NamePoint, PointFormatter{})
	r.Register(NamePlace, PointFormatter{})
	r.Register(NameThesaurus, ThesaurusFormatter{})
	return r
}

// Register adds or replaces a named formatter.
func (r *Registry) Register(name string, f Formatter) {
	r.formatters[name] = f
}

// Get returns the named formatter. Unknown or empty names return nil: the
// raw value then passes through unmodified.
func (r *Registry) Get(name string) Formatter {
	return r.formatters[name]
}

// TextFormatter is the identity coercion.
type TextFormatter struct{}

// Format implements Formatter.
func (TextFormatter) Format(raw string) (string, bool) {
	return raw, true
}

// IntegerFormatter coerces numeric text, truncating fractions. Non-numeric
// input is dropped.
type IntegerFormatter struct{}

// Format implements Formatter.
func (IntegerFormatter) Format(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatInt(int64(f), 10), true
	}
	return "", false
}
