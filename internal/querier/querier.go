// Package querier translates generic structured queries into the engine's
// native form and reshapes native grouped/faceted responses back into
// resource-id-keyed results.
//
// This is the connector's outer read boundary: configuration and transport
// problems come back as failed-but-structured responses, never as
// propagated errors.
package querier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/mapping"
	"github.com/arkivoapp/solr-connector/internal/schema"
	"github.com/arkivoapp/solr-connector/internal/solr"
)

// Engine is the read surface of the index transport. *solr.Client
// satisfies it.
type Engine interface {
	Select(ctx context.Context, req *solr.Request) (*solr.QueryResponse, error)
	Suggest(ctx context.Context, dictionaries []string, q string) (*solr.SuggestResponse, error)
}

// FieldResolver is the schema lookup surface used to validate sort and
// facet fields. *schema.Resolver satisfies it.
type FieldResolver interface {
	GetField(ctx context.Context, name string) *schema.Field
}

// matchAll is the match-everything sentinel for empty query text.
const matchAll = "*:*"

// defaultLimit is the page size used when a query carries none.
const defaultLimit = 25

// DateRange is one named date-range filter. Empty sides are open.
type DateRange struct {
	Field string
	Start string
	End   string
}

// Query is the generic structured query.
type Query struct {
	Text          string
	ResourceNames []domain.ResourceName

	// Filters maps field name to one or more accepted values. Values
	// within one key are ORed; distinct keys are ANDed.
	Filters    map[string][]string
	DateRanges []DateRange

	FacetFields []string
	FacetLimit  int

	// Sort is "fieldName direction"; empty means engine relevance order.
	Sort string

	Limit  int
	Offset int

	SiteID int64
}

// Result is one matched resource.
type Result struct {
	ID   int64               `json:"id"`
	Name domain.ResourceName `json:"resource_name"`
}

// Response is the reshaped engine answer.
type Response struct {
	Success        bool                            `json:"success"`
	Message        string                          `json:"message,omitempty"`
	Total          int                             `json:"total"`
	ResourceTotals map[domain.ResourceName]int     `json:"resource_totals,omitempty"`
	Results        map[domain.ResourceName][]Result `json:"results,omitempty"`
	Facets         map[string]map[string]int       `json:"facets,omitempty"`
}

// Options carries the core-level settings the read path needs.
type Options struct {
	ResourceNameField string
	SitesField        string

	// MinMatch and Tie are passed through to the engine verbatim.
	MinMatch string
	Tie      string

	Suggester *domain.SuggesterConfig
}

// Querier executes structured queries against one core.
type Querier struct {
	engine   Engine
	resolver FieldResolver
	fieldMap *mapping.FieldMap
	opts     Options
	logger   *slog.Logger
}

// New builds a querier for one core.
func New(engine Engine, resolver FieldResolver, fieldMap *mapping.FieldMap, opts Options, logger *slog.Logger) *Querier {
	if opts.ResourceNameField == "" {
		opts.ResourceNameField = "resource_name_s"
	}
	return &Querier{
		engine:   engine,
		resolver: resolver,
		fieldMap: fieldMap,
		opts:     opts,
		logger:   logger,
	}
}

// Search translates, executes and reshapes one query. Transport failures
// come back as a failed response with an error message.
func (q *Querier) Search(ctx context.Context, query Query) *Response {
	req := q.translate(query)

	native, err := q.engine.Select(ctx, req)
	if err != nil {
		q.logger.Error("search failed", "error", err)
		return &Response{Success: false, Message: "error"}
	}
	return q.reshape(native, query)
}

// translate builds the native request.
func (q *Querier) translate(query Query) *solr.Request {
	if query.Limit <= 0 {
		query.Limit = defaultLimit
	}
	req := &solr.Request{
		Params: solr.RequestParams{
			Q:           matchAll,
			Start:       query.Offset,
			Rows:        query.Limit,
			MinMatch:    q.opts.MinMatch,
			Tie:         q.opts.Tie,
			Group:       true,
			GroupField:  q.opts.ResourceNameField,
			GroupLimit:  query.Limit,
			GroupNGroup: true,
		},
	}
	if text := strings.TrimSpace(query.Text); text != "" {
		req.Params.Q = text
		req.Params.DefType = "edismax"
	}

	// Resource-type restriction: one fq, types ORed.
	if len(query.ResourceNames) > 0 {
		values := make([]string, len(query.ResourceNames))
		for i, n := range query.ResourceNames {
			values[i] = quote(string(n))
		}
		req.Params.Fq = append(req.Params.Fq, q.opts.ResourceNameField+":("+strings.Join(values, " OR ")+")")
	}

	// Named field filters: independent fq clauses, values ORed per key.
	// Map iteration order is irrelevant since fq clauses are ANDed.
	for field, values := range query.Filters {
		if field == "" || len(values) == 0 {
			continue
		}
		quoted := make([]string, 0, len(values))
		for _, v := range values {
			quoted = append(quoted, quote(v))
		}
		if len(quoted) == 1 {
			req.Params.Fq = append(req.Params.Fq, field+":"+quoted[0])
		} else {
			req.Params.Fq = append(req.Params.Fq, field+":("+strings.Join(quoted, " OR ")+")")
		}
	}

	for _, dr := range query.DateRanges {
		if dr.Field == "" {
			continue
		}
		req.Params.Fq = append(req.Params.Fq, dr.Field+":["+openDefault(dr.Start)+" TO "+openDefault(dr.End)+"]")
	}

	if query.SiteID > 0 && q.opts.SitesField != "" {
		req.Params.Fq = append(req.Params.Fq, fmt.Sprintf("%s:%d", q.opts.SitesField, query.SiteID))
	}

	if sort, ok := translateSort(query.Sort); ok {
		req.Params.Sort = sort
	}

	if len(query.FacetFields) > 0 {
		limit := query.FacetLimit
		if limit <= 0 {
			limit = 100
		}
		req.Facets = make(map[string]solr.RequestFacet, len(query.FacetFields))
		for _, field := range query.FacetFields {
			req.Facets[field] = solr.RequestFacet{Type: "terms", Field: field, Limit: limit}
		}
	}
	return req
}

// reshape converts the native grouped response into the generic one. Facet
// values with zero counts are dropped.
func (q *Querier) reshape(native *solr.QueryResponse, query Query) *Response {
	resp := &Response{
		Success:        true,
		ResourceTotals: map[domain.ResourceName]int{},
		Results:        map[domain.ResourceName][]Result{},
	}

	if grouped, ok := native.Grouped[q.opts.ResourceNameField]; ok {
		resp.Total = grouped.Matches
		for _, group := range grouped.Groups {
			name := domain.ResourceName(group.GroupValue)
			resp.ResourceTotals[name] = group.DocList.NumFound
			for _, doc := range group.DocList.Docs {
				docName, id, ok := domain.SplitDocumentID(doc.ID())
				if !ok {
					continue
				}
				resp.Results[docName] = append(resp.Results[docName], Result{ID: id, Name: docName})
			}
		}
	} else {
		// Ungrouped fallback, e.g. when the engine ignores grouping.
		resp.Total = native.Response.NumFound
		for _, doc := range native.Response.Docs {
			name, id, ok := domain.SplitDocumentID(doc.ID())
			if !ok {
				continue
			}
			resp.ResourceTotals[name]++
			resp.Results[name] = append(resp.Results[name], Result{ID: id, Name: name})
		}
	}

	if len(query.FacetFields) > 0 {
		resp.Facets = map[string]map[string]int{}
		for _, field := range query.FacetFields {
			counts := map[string]int{}
			for _, bucket := range native.FacetBuckets(field) {
				if bucket.Count <= 0 {
					continue
				}
				counts[fmt.Sprint(bucket.Val)] = bucket.Count
			}
			if len(counts) > 0 {
				resp.Facets[field] = counts
			}
		}
	}
	return resp
}

// translateSort maps a generic "field direction" spec to the native sort
// clause. Unknown direction tokens fall back to ascending; an empty spec
// keeps the engine's relevance order.
func translateSort(spec string) (string, bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", false
	}
	field, direction, _ := strings.Cut(spec, " ")
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "desc", "descending":
		return field + " desc", true
	default:
		return field + " asc", true
	}
}

// quote escapes and quotes one filter value for the native syntax.
func quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}

func openDefault(bound string) string {
	bound = strings.TrimSpace(bound)
	if bound == "" {
		return "*"
	}
	return bound
}
