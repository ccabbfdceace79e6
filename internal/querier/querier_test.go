package querier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/mapping"
	"github.com/arkivoapp/solr-connector/internal/schema"
	"github.com/arkivoapp/solr-connector/internal/solr"
)

type fakeEngine struct {
	lastSelect  *solr.Request
	selectResp  *solr.QueryResponse
	selectErr   error
	lastDicts   []string
	lastSuggest string
	suggestResp *solr.SuggestResponse
	suggestErr  error
}

func (e *fakeEngine) Select(_ context.Context, req *solr.Request) (*solr.QueryResponse, error) {
	e.lastSelect = req
	if e.selectErr != nil {
		return nil, e.selectErr
	}
	if e.selectResp == nil {
		return &solr.QueryResponse{}, nil
	}
	return e.selectResp, nil
}

func (e *fakeEngine) Suggest(_ context.Context, dicts []string, q string) (*solr.SuggestResponse, error) {
	e.lastDicts = dicts
	e.lastSuggest = q
	if e.suggestErr != nil {
		return nil, e.suggestErr
	}
	return e.suggestResp, nil
}

type fakeResolver struct {
	fields map[string]*schema.Field
}

func (r *fakeResolver) GetField(_ context.Context, name string) *schema.Field {
	return r.fields[name]
}

func newTestQuerier(engine Engine, resolver FieldResolver, rows []*domain.FieldMapping, opts Options) *Querier {
	if resolver == nil {
		resolver = &fakeResolver{}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(engine, resolver, mapping.New(rows), opts, logger)
}

func TestTranslate_Defaults(t *testing.T) {
	engine := &fakeEngine{}
	q := newTestQuerier(engine, nil, nil, Options{})

	q.Search(context.Background(), Query{Limit: 25, Offset: 50})

	req := engine.lastSelect
	require.NotNil(t, req)
	assert.Equal(t, "*:*", req.Params.Q)
	assert.Empty(t, req.Params.DefType)
	assert.Equal(t, 50, req.Params.Start)
	assert.Equal(t, 25, req.Params.Rows)
	assert.True(t, req.Params.Group)
	assert.Equal(t, "resource_name_s", req.Params.GroupField)
	assert.Equal(t, 25, req.Params.GroupLimit)
	assert.True(t, req.Params.GroupNGroup)
}

func TestTranslate_ZeroLimitGetsDefaultPage(t *testing.T) {
	engine := &fakeEngine{}
	q := newTestQuerier(engine, nil, nil, Options{})

	q.Search(context.Background(), Query{})

	req := engine.lastSelect
	require.NotNil(t, req)
	assert.Equal(t, defaultLimit, req.Params.Rows)
	assert.Equal(t, defaultLimit, req.Params.GroupLimit)
}

func TestTranslate_TextQueryUsesEdismax(t *testing.T) {
	engine := &fakeEngine{}
	q := newTestQuerier(engine, nil, nil, Options{MinMatch: "75%", Tie: "0.1"})

	q.Search(context.Background(), Query{Text: "  van gogh  "})

	req := engine.lastSelect
	assert.Equal(t, "van gogh", req.Params.Q)
	assert.Equal(t, "edismax", req.Params.DefType)
	assert.Equal(t, "75%", req.Params.MinMatch)
	assert.Equal(t, "0.1", req.Params.Tie)
}

func TestTranslate_Filters(t *testing.T) {
	engine := &fakeEngine{}
	q := newTestQuerier(engine, nil, nil, Options{SitesField: "site_id_is"})

	q.Search(context.Background(), Query{
		ResourceNames: []domain.ResourceName{domain.NameItems, domain.NameMedia},
		Filters: map[string][]string{
			"resource_class_s": {"dctype:Image", `say "hi"`},
		},
		DateRanges: []DateRange{{Field: "date_dt", Start: "1939", End: ""}},
		SiteID:     4,
	})

	fq := engine.lastSelect.Params.Fq
	assert.Contains(t, fq, `resource_name_s:("items" OR "media")`)
	assert.Contains(t, fq, `resource_class_s:("dctype:Image" OR "say \"hi\"")`)
	assert.Contains(t, fq, "date_dt:[1939 TO *]")
	assert.Contains(t, fq, "site_id_is:4")
	assert.Len(t, fq, 4)
}

func TestTranslate_Sort(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"title_s asc", "title_s asc"},
		{"title_s desc", "title_s desc"},
		{"title_s DESCENDING", "title_s desc"},
		{"title_s", "title_s asc"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			engine := &fakeEngine{}
			q := newTestQuerier(engine, nil, nil, Options{})
			q.Search(context.Background(), Query{Sort: tt.spec})
			assert.Equal(t, tt.want, engine.lastSelect.Params.Sort)
		})
	}
}

func TestTranslate_Facets(t *testing.T) {
	engine := &fakeEngine{}
	q := newTestQuerier(engine, nil, nil, Options{})

	q.Search(context.Background(), Query{FacetFields: []string{"resource_class_s"}, FacetLimit: 10})

	facets := engine.lastSelect.Facets
	require.Contains(t, facets, "resource_class_s")
	assert.Equal(t, solr.RequestFacet{Type: "terms", Field: "resource_class_s", Limit: 10}, facets["resource_class_s"])

	// Zero limit falls back to the default.
	q.Search(context.Background(), Query{FacetFields: []string{"x_s"}})
	assert.Equal(t, 100, engine.lastSelect.Facets["x_s"].Limit)
}

func TestSearch_ReshapesGroupedResponse(t *testing.T) {
	engine := &fakeEngine{
		selectResp: &solr.QueryResponse{
			Grouped: map[string]solr.GroupedField{
				"resource_name_s": {
					Matches: 3,
					Groups: []solr.Group{
						{GroupValue: "items", DocList: solr.ResponseBody{
							NumFound: 2,
							Docs:     []solr.Document{{"id": "items:1"}, {"id": "items:9"}},
						}},
						{GroupValue: "media", DocList: solr.ResponseBody{
							NumFound: 1,
							Docs:     []solr.Document{{"id": "media:4"}, {"id": "garbage"}},
						}},
					},
				},
			},
		},
	}
	q := newTestQuerier(engine, nil, nil, Options{})

	resp := q.Search(context.Background(), Query{})
	require.True(t, resp.Success)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, map[domain.ResourceName]int{domain.NameItems: 2, domain.NameMedia: 1}, resp.ResourceTotals)
	assert.Equal(t, []Result{{ID: 1, Name: domain.NameItems}, {ID: 9, Name: domain.NameItems}}, resp.Results[domain.NameItems])
	assert.Equal(t, []Result{{ID: 4, Name: domain.NameMedia}}, resp.Results[domain.NameMedia])
}

func TestSearch_UngroupedFallback(t *testing.T) {
	engine := &fakeEngine{
		selectResp: &solr.QueryResponse{
			Response: solr.ResponseBody{
				NumFound: 2,
				Docs:     []solr.Document{{"id": "items:1"}, {"id": "item_sets:2"}},
			},
		},
	}
	q := newTestQuerier(engine, nil, nil, Options{})

	resp := q.Search(context.Background(), Query{})
	require.True(t, resp.Success)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.ResourceTotals[domain.NameItems])
	assert.Equal(t, 1, resp.ResourceTotals[domain.NameItemSets])
}

func TestSearch_FacetsDropZeroCounts(t *testing.T) {
	engine := &fakeEngine{
		selectResp: &solr.QueryResponse{
			Facets: map[string]any{
				"resource_class_s": map[string]any{
					"buckets": []any{
						map[string]any{"val": "dctype:Image", "count": float64(5)},
						map[string]any{"val": "dctype:Text", "count": float64(0)},
					},
				},
			},
		},
	}
	q := newTestQuerier(engine, nil, nil, Options{})

	resp := q.Search(context.Background(), Query{FacetFields: []string{"resource_class_s"}})
	require.True(t, resp.Success)
	assert.Equal(t, map[string]int{"dctype:Image": 5}, resp.Facets["resource_class_s"])
}

func TestSearch_TransportFailure(t *testing.T) {
	engine := &fakeEngine{selectErr: errors.New("connection refused")}
	q := newTestQuerier(engine, nil, nil, Options{})

	resp := q.Search(context.Background(), Query{Text: "anything"})
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}
