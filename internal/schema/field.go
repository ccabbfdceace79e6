// Package schema resolves index field names against a core's remote
// schema, including dynamic-field pattern matching, and classifies the
// resolved fields by type.
package schema

import "strings"

// Solr ships these type names in its default configsets. Classification is
// an explicit membership test over the lists, not a naming heuristic.
var (
	booleanTypes = newSet("boolean", "booleans")
	dateTypes    = newSet("pdate", "pdates", "date", "dates", "tdate", "tdates")
	floatTypes   = newSet("pfloat", "pfloats", "float", "tfloat", "pdouble", "pdoubles", "double", "tdouble")
	integerTypes = newSet("pint", "pints", "int", "tint", "plong", "plongs", "long", "tlong")
	stringTypes  = newSet("string", "strings", "uuid")
)

// textMarker is the text-family marker in Solr type names. A type
// containing it holds general text; a type prefixed by it is tokenized.
const textMarker = "text"

func newSet(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Field is the resolved view of one index field: its definition (possibly
// synthesized from a dynamic-field pattern) plus the resolved type.
type Field struct {
	Name     string
	TypeName string

	multiValued bool
}

// MultiValued reports whether the field accepts more than one value.
func (f *Field) MultiValued() bool { return f.multiValued }

// IsBoolean reports whether the field holds booleans.
func (f *Field) IsBoolean() bool {
	_, ok := booleanTypes[f.TypeName]
	return ok
}

// IsDate reports whether the field holds instants.
func (f *Field) IsDate() bool {
	_, ok := dateTypes[f.TypeName]
	return ok
}

// IsFloat reports whether the field holds floating point numbers.
func (f *Field) IsFloat() bool {
	_, ok := floatTypes[f.TypeName]
	return ok
}

// IsInteger reports whether the field holds integers.
func (f *Field) IsInteger() bool {
	_, ok := integerTypes[f.TypeName]
	return ok
}

// IsString reports whether the field holds untokenized strings.
func (f *Field) IsString() bool {
	_, ok := stringTypes[f.TypeName]
	return ok
}

// IsGeneralText reports whether the field belongs to the text family.
func (f *Field) IsGeneralText() bool {
	return strings.Contains(f.TypeName, textMarker)
}

// IsTokenized reports whether the field's type is text-prefixed, i.e. its
// content goes through an analyzer chain.
func (f *Field) IsTokenized() bool {
	return strings.HasPrefix(f.TypeName, textMarker)
}

// IsNumeric reports whether the field belongs to the integer, float or
// date families.
func (f *Field) IsNumeric() bool {
	return f.IsInteger() || f.IsFloat() || f.IsDate()
}

// Sortable reports whether the field can back a sort clause: single valued
// and not run through a tokenizer.
func (f *Field) Sortable() bool {
	return !f.multiValued && !f.IsTokenized()
}
