package mapping

import (
	"sort"

	"github.com/arkivoapp/solr-connector/internal/domain"
)

// Entry pairs a FieldMapping row with its parsed source expression.
type Entry struct {
	*domain.FieldMapping
	Source Source
}

// FieldMap is the ordered view over one core's mapping rows. Sources are
// parsed once at construction.
type FieldMap struct {
	entries []Entry
}

// New builds a FieldMap from a core's rows, preserving their order.
func New(rows []*domain.FieldMapping) *FieldMap {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			FieldMapping: row,
			Source:       ParseSource(row.Source),
		})
	}
	return &FieldMap{entries: entries}
}

// All returns every entry in declaration order.
func (fm *FieldMap) All() []Entry {
	return fm.entries
}

// ForResource returns the entries applicable to a concrete resource type:
// the type's own rows plus the generic/resources wildcard rows, in
// declaration order.
func (fm *FieldMap) ForResource(name domain.ResourceName) []Entry {
	var out []Entry
	for _, e := range fm.entries {
		if e.AppliesTo(name) {
			out = append(out, e)
		}
	}
	return out
}

// ByStructure returns the entries in the stable order used to build query
// and facet field picklists: wildcard rows first, then resource-specific
// rows, ties broken by field name ascending.
func (fm *FieldMap) ByStructure() []Entry {
	out := make([]Entry, len(fm.entries))
	copy(out, fm.entries)
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := out[i].ResourceName.IsWildcard(), out[j].ResourceName.IsWildcard()
		if wi != wj {
			return wi
		}
		if out[i].FieldName != out[j].FieldName {
			return out[i].FieldName < out[j].FieldName
		}
		return out[i].ResourceName < out[j].ResourceName
	})
	return out
}

// FieldNames returns the distinct target field names in structure order.
func (fm *FieldMap) FieldNames() []string {
	seen := map[string]struct{}{}
	var names []string
	for _, e := range fm.ByStructure() {
		if _, ok := seen[e.FieldName]; ok {
			continue
		}
		seen[e.FieldName] = struct{}{}
		names = append(names, e.FieldName)
	}
	return names
}
