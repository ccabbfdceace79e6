package domain

import (
	"slices"
	"time"
)

// Pool restricts which resources (and, for data types, which individual
// values) a field mapping applies to. An empty pool applies to everything.
type Pool struct {
	ResourceClasses   []string `json:"resource_classes,omitempty"`
	ResourceTemplates []string `json:"resource_templates,omitempty"`
	SiteIDs           []int64  `json:"site_ids,omitempty"`
	DataTypes         []string `json:"data_types,omitempty"`
}

// IsEmpty reports whether the pool carries no constraint at all.
func (p Pool) IsEmpty() bool {
	return len(p.ResourceClasses) == 0 &&
		len(p.ResourceTemplates) == 0 &&
		len(p.SiteIDs) == 0 &&
		len(p.DataTypes) == 0
}

// Matches evaluates the per-resource constraints: every non-empty
// constraint must be satisfied. DataTypes is deliberately excluded here;
// it filters individual values at extraction time.
func (p Pool) Matches(r *Resource) bool {
	if len(p.ResourceClasses) > 0 && !slices.Contains(p.ResourceClasses, r.ResourceClass) {
		return false
	}
	if len(p.ResourceTemplates) > 0 && !slices.Contains(p.ResourceTemplates, r.ResourceTemplate) {
		return false
	}
	if len(p.SiteIDs) > 0 {
		found := false
		for _, id := range p.SiteIDs {
			if slices.Contains(r.SiteIDs, id) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MatchesValue evaluates the per-value data-type constraint.
func (p Pool) MatchesValue(v Value) bool {
	if len(p.DataTypes) == 0 {
		return true
	}
	return slices.Contains(p.DataTypes, string(v.Type))
}

// FieldMapping maps one source path of a resource type onto one index
// field of a core. (ResourceName, FieldName, Source) should be unique per
// core but duplicates are tolerated; the last one wins at index time.
type FieldMapping struct {
	ID           string
	CoreID       string
	ResourceName ResourceName
	FieldName    string
	Alias        string
	Source       string
	Pool         Pool

	// Settings holds at minimum the optional "formatter" and "label" keys.
	Settings map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayAlias returns the name exposed to the query and facet UI, falling
// back to the raw field name.
func (m *FieldMapping) DisplayAlias() string {
	if m.Alias != "" {
		return m.Alias
	}
	return m.FieldName
}

// Formatter returns the declared formatter name, or "" for pass-through.
func (m *FieldMapping) Formatter() string {
	return m.Settings["formatter"]
}

// Label returns the human label configured for the mapping.
func (m *FieldMapping) Label() string {
	if l := m.Settings["label"]; l != "" {
		return l
	}
	return m.DisplayAlias()
}

// AppliesTo reports whether the mapping's resource tag covers the given
// concrete resource type.
func (m *FieldMapping) AppliesTo(name ResourceName) bool {
	return m.ResourceName == name || m.ResourceName.IsWildcard()
}
