package schema

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkivoapp/solr-connector/internal/solr"
)

type stubFetcher struct {
	schema  *solr.Schema
	err     error
	fetches int
}

func (f *stubFetcher) FetchSchema(_ context.Context) (*solr.Schema, error) {
	f.fetches++
	return f.schema, f.err
}

func (f *stubFetcher) Endpoint() string { return "http://solr.local:8983/solr/test" }

func boolPtr(b bool) *bool { return &b }

func testSchema() *solr.Schema {
	return &solr.Schema{
		Name: "test",
		Fields: []solr.SchemaFieldDef{
			{Name: "id", Type: "string"},
			{Name: "resource_name_s", Type: "string"},
			{Name: "tags", Type: "strings"},
		},
		DynamicFields: []solr.SchemaFieldDef{
			{Name: "*_t", Type: "text_general", MultiValued: boolPtr(true)},
			{Name: "*_s", Type: "string"},
			{Name: "*_i", Type: "pint"},
			{Name: "*_dt", Type: "pdate"},
			{Name: "special_*", Type: "string"},
		},
		FieldTypes: []solr.SchemaTypeDef{
			{Name: "string", Class: "solr.StrField"},
			{Name: "strings", Class: "solr.StrField", MultiValued: true},
			{Name: "text_general", Class: "solr.TextField"},
			{Name: "pint", Class: "solr.IntPointField"},
			{Name: "pdate", Class: "solr.DatePointField"},
		},
	}
}

func testResolver(t *testing.T, fetcher Fetcher) *Resolver {
	t.Helper()
	return NewResolver(fetcher, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestResolver_StaticField(t *testing.T) {
	r := testResolver(t, &stubFetcher{schema: testSchema()})

	f := r.GetField(context.Background(), "resource_name_s")
	require.NotNil(t, f)
	assert.Equal(t, "string", f.TypeName)
	assert.True(t, f.IsString())
	assert.False(t, f.MultiValued())
	assert.True(t, f.Sortable())
}

func TestResolver_DynamicSuffix(t *testing.T) {
	r := testResolver(t, &stubFetcher{schema: testSchema()})

	f := r.GetField(context.Background(), "dcterms_title_t")
	require.NotNil(t, f)
	assert.Equal(t, "text_general", f.TypeName)
	assert.True(t, f.IsGeneralText())
	assert.True(t, f.IsTokenized())
	assert.True(t, f.MultiValued())
	assert.False(t, f.Sortable())
}

func TestResolver_PrefixBeatsSuffix(t *testing.T) {
	// "special_thing_t" matches both "special_*" and "*_t"; prefix patterns
	// are probed first.
	r := testResolver(t, &stubFetcher{schema: testSchema()})

	f := r.GetField(context.Background(), "special_thing_t")
	require.NotNil(t, f)
	assert.Equal(t, "string", f.TypeName)
}

func TestResolver_MultiValuedFromType(t *testing.T) {
	r := testResolver(t, &stubFetcher{schema: testSchema()})

	f := r.GetField(context.Background(), "tags")
	require.NotNil(t, f)
	assert.True(t, f.MultiValued())
	assert.False(t, f.Sortable())
}

func TestResolver_UnknownField(t *testing.T) {
	r := testResolver(t, &stubFetcher{schema: testSchema()})

	assert.Nil(t, r.GetField(context.Background(), "nonexistent"))
	assert.Nil(t, r.GetField(context.Background(), ""))
}

func TestResolver_FetchesOnce(t *testing.T) {
	fetcher := &stubFetcher{schema: testSchema()}
	r := testResolver(t, fetcher)

	ctx := context.Background()
	r.GetField(ctx, "id")
	r.GetField(ctx, "dcterms_title_t")
	r.GetField(ctx, "dcterms_title_t")
	require.NoError(t, r.Available(ctx))

	assert.Equal(t, 1, fetcher.fetches)
}

func TestResolver_FetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: assert.AnError}
	r := testResolver(t, fetcher)

	ctx := context.Background()
	assert.Nil(t, r.GetField(ctx, "dcterms_title_t"))

	err := r.Available(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http://solr.local:8983/solr/test")

	// The failed fetch is not retried within the resolver's lifetime.
	r.GetField(ctx, "id")
	assert.Equal(t, 1, fetcher.fetches)
}

func TestField_Classification(t *testing.T) {
	tests := []struct {
		typeName string
		check    func(*Field) bool
	}{
		{"boolean", (*Field).IsBoolean},
		{"pdate", (*Field).IsDate},
		{"pfloat", (*Field).IsFloat},
		{"pint", (*Field).IsInteger},
		{"string", (*Field).IsString},
		{"text_general", (*Field).IsGeneralText},
		{"pint", (*Field).IsNumeric},
		{"pdate", (*Field).IsNumeric},
	}

	for _, tt := range tests {
		f := &Field{Name: "x", TypeName: tt.typeName}
		assert.True(t, tt.check(f), "type %s", tt.typeName)
	}

	// A text-suffixed type is in the text family but not tokenized.
	f := &Field{Name: "x", TypeName: "sorted_text"}
	assert.True(t, f.IsGeneralText())
	assert.False(t, f.IsTokenized())
}
