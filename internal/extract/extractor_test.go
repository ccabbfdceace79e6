package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/mapping"
)

func entry(source string, pool domain.Pool) mapping.Entry {
	return mapping.Entry{
		FieldMapping: &domain.FieldMapping{Source: source, Pool: pool},
		Source:       mapping.ParseSource(source),
	}
}

func testItem() *domain.Resource {
	return &domain.Resource{
		ID:               7,
		Name:             domain.NameItems,
		IsPublic:         true,
		OwnerID:          3,
		SiteIDs:          []int64{1, 2},
		ResourceClass:    "dctype:Image",
		ResourceTemplate: "Artwork",
		ItemSetIDs:       []int64{10, 11},
		Values: []domain.PropertyValues{
			{Term: "dcterms:title", Values: []domain.Value{
				{Type: domain.ValueLiteral, Literal: "Starry Night"},
			}},
			{Term: "dcterms:creator", Values: []domain.Value{
				{Type: domain.ValueLiteral, Literal: "van Gogh", Annotations: []domain.AnnotationSet{
					{Property: "dcterms:source", Values: []domain.Value{
						{Type: domain.ValueLiteral, Literal: "catalogue"},
					}},
					{Property: "dcterms:date", Values: []domain.Value{
						{Type: domain.ValueLiteral, Literal: "1889"},
					}},
				}},
				{Type: domain.ValueURI, URI: "https://viaf.org/viaf/9854560", Label: "Vincent van Gogh"},
			}},
			{Term: "dcterms:relation", Values: []domain.Value{
				{Type: domain.ValueResource, ResourceID: 42},
			}},
		},
	}
}

func TestGenericExtractor_Property(t *testing.T) {
	reg := NewRegistry()
	r := testItem()

	got := reg.Get(r.Name).Extract(r, entry("dcterms:creator", domain.Pool{}))
	assert.Equal(t, []string{"van Gogh", "https://viaf.org/viaf/9854560"}, got)

	got = reg.Get(r.Name).Extract(r, entry("dcterms:relation", domain.Pool{}))
	assert.Equal(t, []string{"42"}, got)

	assert.Nil(t, reg.Get(r.Name).Extract(r, entry("dcterms:missing", domain.Pool{})))
}

func TestGenericExtractor_PropertyPoolFilter(t *testing.T) {
	reg := NewRegistry()
	r := testItem()

	got := reg.Get(r.Name).Extract(r, entry("dcterms:creator", domain.Pool{DataTypes: []string{"uri"}}))
	assert.Equal(t, []string{"https://viaf.org/viaf/9854560"}, got)
}

func TestGenericExtractor_Annotations(t *testing.T) {
	reg := NewRegistry()
	r := testItem()

	// Untargeted: every annotation property in declaration order.
	got := reg.Get(r.Name).Extract(r, entry("dcterms:creator/annotation", domain.Pool{}))
	assert.Equal(t, []string{"catalogue", "1889"}, got)

	// Targeted: only the named annotation property.
	got = reg.Get(r.Name).Extract(r, entry("dcterms:creator/annotation/dcterms:date", domain.Pool{}))
	assert.Equal(t, []string{"1889"}, got)

	assert.Nil(t, reg.Get(r.Name).Extract(r, entry("dcterms:title/annotation", domain.Pool{})))
}

func TestGenericExtractor_Structural(t *testing.T) {
	reg := NewRegistry()
	r := testItem()
	x := reg.Get(r.Name)

	tests := []struct {
		source string
		want   []string
	}{
		{"o:id", []string{"7"}},
		{"is_public", []string{"true"}},
		{"owner/o:id", []string{"3"}},
		{"resource_class/o:term", []string{"dctype:Image"}},
		{"resource_template/o:label", []string{"Artwork"}},
		{"site/o:id", []string{"1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, x.Extract(r, entry(tt.source, domain.Pool{})))
		})
	}
}

func TestGenericExtractor_StructuralAbsent(t *testing.T) {
	reg := NewRegistry()
	r := &domain.Resource{ID: 1, Name: domain.NameItems}
	x := reg.Get(r.Name)

	assert.Nil(t, x.Extract(r, entry("owner/o:id", domain.Pool{})))
	assert.Nil(t, x.Extract(r, entry("resource_class/o:term", domain.Pool{})))
	assert.Nil(t, x.Extract(r, entry("resource_template/o:label", domain.Pool{})))
	assert.Nil(t, x.Extract(r, entry("site/o:id", domain.Pool{})))
}

func TestGenericExtractor_InvalidSource(t *testing.T) {
	reg := NewRegistry()
	r := testItem()

	assert.Nil(t, reg.Get(r.Name).Extract(r, entry("not a source", domain.Pool{})))
}

func TestItemExtractor_ItemSets(t *testing.T) {
	reg := NewRegistry()
	r := testItem()

	got := reg.Get(domain.NameItems).Extract(r, entry("item_set/o:id", domain.Pool{}))
	assert.Equal(t, []string{"10", "11"}, got)

	// Item sets themselves have no such relation.
	set := &domain.Resource{ID: 10, Name: domain.NameItemSets}
	assert.Nil(t, reg.Get(domain.NameItemSets).Extract(set, entry("item_set/o:id", domain.Pool{})))
}

func TestMediaExtractor_ParentItem(t *testing.T) {
	reg := NewRegistry()
	m := &domain.Resource{ID: 20, Name: domain.NameMedia, ItemID: 7}

	got := reg.Get(domain.NameMedia).Extract(m, entry("item/o:id", domain.Pool{}))
	assert.Equal(t, []string{"7"}, got)

	orphan := &domain.Resource{ID: 21, Name: domain.NameMedia}
	assert.Nil(t, reg.Get(domain.NameMedia).Extract(orphan, entry("item/o:id", domain.Pool{})))
}

func TestRegistry_FallsBackToGeneric(t *testing.T) {
	reg := NewRegistry()
	assert.NotNil(t, reg.Get(domain.ResourceName("unknown")))
}
