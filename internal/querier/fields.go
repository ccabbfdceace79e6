package querier

import (
	"context"

	"github.com/arkivoapp/solr-connector/internal/domain"
)

// FieldInfo describes one queryable index field for the host platform's
// query-building UI.
type FieldInfo struct {
	Name         string              `json:"name"`
	Alias        string              `json:"alias"`
	Label        string              `json:"label"`
	ResourceName domain.ResourceName `json:"resource_name"`
	Type         string              `json:"type,omitempty"`
	MultiValued  bool                `json:"multi_valued,omitempty"`
}

// AvailableFields lists every mapped field in structure order (wildcard
// mappings first, then resource-specific, ties by field name), optionally
// restricted to one resource type.
func (q *Querier) AvailableFields(ctx context.Context, name domain.ResourceName) []FieldInfo {
	var out []FieldInfo
	seen := map[string]struct{}{}
	for _, e := range q.fieldMap.ByStructure() {
		if name != "" && !e.AppliesTo(name) {
			continue
		}
		if _, ok := seen[e.FieldName]; ok {
			continue
		}
		seen[e.FieldName] = struct{}{}

		info := FieldInfo{
			Name:         e.FieldName,
			Alias:        e.DisplayAlias(),
			Label:        e.Label(),
			ResourceName: e.ResourceName,
		}
		if f := q.resolver.GetField(ctx, e.FieldName); f != nil {
			info.Type = f.TypeName
			info.MultiValued = f.MultiValued()
		}
		out = append(out, info)
	}
	return out
}

// AvailableSortFields restricts AvailableFields to fields that can back a
// sort clause: resolvable, single valued and untokenized. Without schema
// information no field qualifies.
func (q *Querier) AvailableSortFields(ctx context.Context, name domain.ResourceName) []FieldInfo {
	var out []FieldInfo
	for _, info := range q.AvailableFields(ctx, name) {
		f := q.resolver.GetField(ctx, info.Name)
		if f == nil || !f.Sortable() {
			continue
		}
		out = append(out, info)
	}
	return out
}

// AvailableFacetFields restricts AvailableFields to fields whose values
// are stored untokenized and can therefore carry meaningful bucket counts.
// Unresolvable fields are kept: a missing schema must not empty the facet
// picklist.
func (q *Querier) AvailableFacetFields(ctx context.Context, name domain.ResourceName) []FieldInfo {
	var out []FieldInfo
	for _, info := range q.AvailableFields(ctx, name) {
		if f := q.resolver.GetField(ctx, info.Name); f != nil && f.IsTokenized() {
			continue
		}
		out = append(out, info)
	}
	return out
}
