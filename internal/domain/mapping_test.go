package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_IsEmpty(t *testing.T) {
	assert.True(t, Pool{}.IsEmpty())
	assert.False(t, Pool{ResourceClasses: []string{"foaf:Person"}}.IsEmpty())
	assert.False(t, Pool{DataTypes: []string{"literal"}}.IsEmpty())
}

func TestPool_Matches(t *testing.T) {
	r := &Resource{
		ResourceClass:    "foaf:Person",
		ResourceTemplate: "Person",
		SiteIDs:          []int64{1, 3},
	}

	tests := []struct {
		name string
		pool Pool
		want bool
	}{
		{"empty pool matches", Pool{}, true},
		{"class match", Pool{ResourceClasses: []string{"foaf:Person"}}, true},
		{"class mismatch", Pool{ResourceClasses: []string{"foaf:Document"}}, false},
		{"template match", Pool{ResourceTemplates: []string{"Person"}}, true},
		{"template mismatch", Pool{ResourceTemplates: []string{"Document"}}, false},
		{"site overlap", Pool{SiteIDs: []int64{3, 5}}, true},
		{"site disjoint", Pool{SiteIDs: []int64{2, 5}}, false},
		{"all constraints must hold", Pool{ResourceClasses: []string{"foaf:Person"}, SiteIDs: []int64{9}}, false},
		{"data types ignored per-resource", Pool{DataTypes: []string{"uri"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pool.Matches(r))
		})
	}
}

func TestPool_MatchesValue(t *testing.T) {
	pool := Pool{DataTypes: []string{"uri", "resource"}}

	assert.True(t, pool.MatchesValue(Value{Type: ValueURI}))
	assert.True(t, pool.MatchesValue(Value{Type: ValueResource}))
	assert.False(t, pool.MatchesValue(Value{Type: ValueLiteral}))

	assert.True(t, Pool{}.MatchesValue(Value{Type: ValueLiteral}))
}

func TestFieldMapping_DisplayAliasAndLabel(t *testing.T) {
	m := &FieldMapping{FieldName: "dcterms_title_t"}
	assert.Equal(t, "dcterms_title_t", m.DisplayAlias())
	assert.Equal(t, "dcterms_title_t", m.Label())

	m.Alias = "title"
	assert.Equal(t, "title", m.DisplayAlias())
	assert.Equal(t, "title", m.Label())

	m.Settings = map[string]string{"label": "Title"}
	assert.Equal(t, "Title", m.Label())
}

func TestFieldMapping_AppliesTo(t *testing.T) {
	items := &FieldMapping{ResourceName: NameItems}
	assert.True(t, items.AppliesTo(NameItems))
	assert.False(t, items.AppliesTo(NameMedia))

	generic := &FieldMapping{ResourceName: NameGeneric}
	for _, name := range ConcreteResourceNames {
		assert.True(t, generic.AppliesTo(name))
	}
}
