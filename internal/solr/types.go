// Package solr provides the wire types and the thin HTTP client for the
// Solr JSON APIs the connector uses: update, select (with grouping and
// JSON facets), schema introspection and suggesters.
//
// The package only builds request objects and interprets response objects.
// Retry, backoff and request scheduling belong to callers.
package solr

// RequestParams is the legacy-parameter block of a JSON request. Grouping
// parameters ride along here since the JSON request API has no first-class
// grouping DSL.
type RequestParams struct {
	Q           string   `json:"q,omitempty"`
	Fq          []string `json:"fq,omitempty"`
	Start       int      `json:"start"`
	Rows        int      `json:"rows"`
	Fl          []string `json:"fl,omitempty"`
	Sort        string   `json:"sort,omitempty"`
	DefType     string   `json:"defType,omitempty"`
	MinMatch    string   `json:"mm,omitempty"`
	Tie         string   `json:"tie,omitempty"`
	Group       bool     `json:"group,omitempty"`
	GroupField  string   `json:"group.field,omitempty"`
	GroupLimit  int      `json:"group.limit,omitempty"`
	GroupNGroup bool     `json:"group.ngroups,omitempty"`
}

// RequestFacet is one entry of the json.facet block.
type RequestFacet struct {
	Type  string `json:"type"`
	Field string `json:"field"`
	Limit int    `json:"limit,omitempty"`
	Sort  string `json:"sort,omitempty"`
}

// Request is the body POSTed to /select.
type Request struct {
	Params RequestParams           `json:"params"`
	Facets map[string]RequestFacet `json:"facet,omitempty"`
}

// ResponseHeader reports Solr-side status and timing.
type ResponseHeader struct {
	Status int `json:"status"`
	QTime  int `json:"QTime"`
}

// Document is one flat multi-valued index document. Values are either a
// scalar or a []any for multivalued fields.
type Document map[string]any

// ID returns the document id field, if present.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Add appends a value to a field, promoting the field to a slice on the
// second value.
func (d Document) Add(field string, value any) {
	existing, ok := d[field]
	if !ok {
		d[field] = value
		return
	}
	if vs, ok := existing.([]any); ok {
		d[field] = append(vs, value)
		return
	}
	d[field] = []any{existing, value}
}

// ResponseBody is the ungrouped result section.
type ResponseBody struct {
	NumFound int        `json:"numFound"`
	Start    int        `json:"start"`
	MaxScore float64    `json:"maxScore,omitempty"`
	Docs     []Document `json:"docs,omitempty"`
}

// Group is one grouped-result bucket: the group value plus its page of
// documents.
type Group struct {
	GroupValue string       `json:"groupValue"`
	DocList    ResponseBody `json:"doclist"`
}

// GroupedField is the grouping section for one group.field.
type GroupedField struct {
	Matches int     `json:"matches"`
	NGroups int     `json:"ngroups,omitempty"`
	Groups  []Group `json:"groups,omitempty"`
}

// FacetBucket is one value/count pair of a terms facet.
type FacetBucket struct {
	Val   any `json:"val"`
	Count int `json:"count"`
}

// ResponseFacet holds the buckets of one requested facet.
type ResponseFacet struct {
	Buckets []FacetBucket `json:"buckets,omitempty"`
}

// Error is the error block Solr attaches to failed requests.
type Error struct {
	Msg  string `json:"msg,omitempty"`
	Code int    `json:"code,omitempty"`
}

// QueryResponse is the decoded body of a /select response.
type QueryResponse struct {
	ResponseHeader ResponseHeader           `json:"responseHeader"`
	Response       ResponseBody             `json:"response"`
	Grouped        map[string]GroupedField  `json:"grouped,omitempty"`
	Facets         map[string]any           `json:"facets,omitempty"`
	Error          *Error                   `json:"error,omitempty"`
}

// FacetBuckets extracts the buckets of a named facet from the raw facets
// block. The json.facet response nests buckets under each facet name next
// to the scalar "count" entry.
func (r *QueryResponse) FacetBuckets(name string) []FacetBucket {
	raw, ok := r.Facets[name].(map[string]any)
	if !ok {
		return nil
	}
	rawBuckets, ok := raw["buckets"].([]any)
	if !ok {
		return nil
	}
	buckets := make([]FacetBucket, 0, len(rawBuckets))
	for _, rb := range rawBuckets {
		b, ok := rb.(map[string]any)
		if !ok {
			continue
		}
		count, _ := b["count"].(float64)
		buckets = append(buckets, FacetBucket{Val: b["val"], Count: int(count)})
	}
	return buckets
}

// Suggestion is a single suggester term with its weight.
type Suggestion struct {
	Term    string `json:"term"`
	Weight  int64  `json:"weight"`
	Payload string `json:"payload,omitempty"`
}

// SuggestBlock is the per-query result of one dictionary.
type SuggestBlock struct {
	NumFound    int          `json:"numFound"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// SuggestResponse is the decoded body of a /suggest response, keyed by
// dictionary name, then by the query string.
type SuggestResponse struct {
	ResponseHeader ResponseHeader                     `json:"responseHeader"`
	Suggest        map[string]map[string]SuggestBlock `json:"suggest,omitempty"`
	Error          *Error                             `json:"error,omitempty"`
}

// SchemaFieldDef is one static or dynamic field definition from the schema
// API. MultiValued is a pointer: absent means "inherit from the type".
type SchemaFieldDef struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	MultiValued *bool  `json:"multiValued,omitempty"`
	Indexed     *bool  `json:"indexed,omitempty"`
	Stored      *bool  `json:"stored,omitempty"`
}

// SchemaTypeDef is one field-type definition from the schema API.
type SchemaTypeDef struct {
	Name        string `json:"name"`
	Class       string `json:"class"`
	MultiValued bool   `json:"multiValued,omitempty"`
}

// Schema is the remote schema document.
type Schema struct {
	Name          string           `json:"name"`
	Fields        []SchemaFieldDef `json:"fields"`
	DynamicFields []SchemaFieldDef `json:"dynamicFields"`
	FieldTypes    []SchemaTypeDef  `json:"fieldTypes"`
}

// SchemaResponse wraps the schema API body.
type SchemaResponse struct {
	ResponseHeader ResponseHeader `json:"responseHeader"`
	Schema         Schema         `json:"schema"`
	Error          *Error         `json:"error,omitempty"`
}
