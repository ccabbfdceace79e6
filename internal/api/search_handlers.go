package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/querier"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search-core",
		Method:      http.MethodPost,
		Path:        "/api/v1/cores/{coreID}/search",
		Summary:     "Run a structured search",
		Description: "Engine trouble comes back as a failed-but-structured response, not an error.",
		Tags:        []string{"Search"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "suggest",
		Method:      http.MethodGet,
		Path:        "/api/v1/cores/{coreID}/suggest",
		Summary:     "Autocomplete lookup",
		Tags:        []string{"Search"},
	}, s.handleSuggest)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-fields",
		Method:      http.MethodGet,
		Path:        "/api/v1/cores/{coreID}/fields",
		Summary:     "List queryable fields",
		Tags:        []string{"Search"},
	}, s.handleFields)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-sort-fields",
		Method:      http.MethodGet,
		Path:        "/api/v1/cores/{coreID}/sort-fields",
		Summary:     "List sortable fields",
		Tags:        []string{"Search"},
	}, s.handleSortFields)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-facet-fields",
		Method:      http.MethodGet,
		Path:        "/api/v1/cores/{coreID}/facet-fields",
		Summary:     "List facetable fields",
		Tags:        []string{"Search"},
	}, s.handleFacetFields)
}

// === DTOs ===

// DateRangeFilter is one named date-range filter; empty sides are open.
type DateRangeFilter struct {
	Field string `json:"field" required:"true"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// SearchRequest is the structured query body.
type SearchRequest struct {
	Query         string              `json:"query,omitempty" doc:"Free-text query; empty matches everything"`
	ResourceNames []string            `json:"resource_names,omitempty" doc:"Restrict to these resource types"`
	Filters       map[string][]string `json:"filters,omitempty" doc:"Field to accepted values; values ORed, keys ANDed"`
	DateRanges    []DateRangeFilter   `json:"date_ranges,omitempty"`
	FacetFields   []string            `json:"facet_fields,omitempty"`
	FacetLimit    int                 `json:"facet_limit,omitempty" minimum:"0"`
	Sort          string              `json:"sort,omitempty" doc:"\"fieldName asc|desc\"; empty means relevance order"`
	Limit         int                 `json:"limit,omitempty" minimum:"0" maximum:"1000"`
	Offset        int                 `json:"offset,omitempty" minimum:"0"`
	SiteID        int64               `json:"site_id,omitempty" minimum:"0"`
}

// SearchInput binds the search request for Huma.
type SearchInput struct {
	CoreID string `path:"coreID" doc:"Core ID"`
	Body   SearchRequest
}

// SearchOutput wraps the reshaped engine answer.
type SearchOutput struct {
	Body querier.Response
}

// SuggestInput binds the autocomplete request.
type SuggestInput struct {
	CoreID string `path:"coreID" doc:"Core ID"`
	Q      string `query:"q" doc:"Prefix to complete"`
}

// SuggestOutput wraps autocomplete results.
type SuggestOutput struct {
	Body querier.SuggestResponse
}

// FieldListInput binds the field picklist requests.
type FieldListInput struct {
	CoreID       string `path:"coreID" doc:"Core ID"`
	ResourceName string `query:"resource_name" doc:"Restrict to one resource type" enum:",items,item_sets,media"`
}

// FieldListOutput wraps a field picklist.
type FieldListOutput struct {
	Body []querier.FieldInfo
}

func toQuery(req SearchRequest) querier.Query {
	q := querier.Query{
		Text:        req.Query,
		Filters:     req.Filters,
		FacetFields: req.FacetFields,
		FacetLimit:  req.FacetLimit,
		Sort:        req.Sort,
		Limit:       req.Limit,
		Offset:      req.Offset,
		SiteID:      req.SiteID,
	}
	for _, name := range req.ResourceNames {
		q.ResourceNames = append(q.ResourceNames, domain.ResourceName(name))
	}
	for _, dr := range req.DateRanges {
		q.DateRanges = append(q.DateRanges, querier.DateRange{
			Field: dr.Field,
			Start: dr.Start,
			End:   dr.End,
		})
	}
	return q
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	resp, err := s.services.Query.Search(ctx, input.CoreID, toQuery(input.Body))
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: *resp}, nil
}

func (s *Server) handleSuggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error) {
	resp, err := s.services.Query.Suggest(ctx, input.CoreID, input.Q)
	if err != nil {
		return nil, err
	}
	return &SuggestOutput{Body: *resp}, nil
}

func (s *Server) handleFields(ctx context.Context, input *FieldListInput) (*FieldListOutput, error) {
	fields, err := s.services.Query.Fields(ctx, input.CoreID, domain.ResourceName(input.ResourceName))
	if err != nil {
		return nil, err
	}
	return &FieldListOutput{Body: fields}, nil
}

func (s *Server) handleSortFields(ctx context.Context, input *FieldListInput) (*FieldListOutput, error) {
	fields, err := s.services.Query.SortFields(ctx, input.CoreID, domain.ResourceName(input.ResourceName))
	if err != nil {
		return nil, err
	}
	return &FieldListOutput{Body: fields}, nil
}

func (s *Server) handleFacetFields(ctx context.Context, input *FieldListInput) (*FieldListOutput, error) {
	fields, err := s.services.Query.FacetFields(ctx, input.CoreID, domain.ResourceName(input.ResourceName))
	if err != nil {
		return nil, err
	}
	return &FieldListOutput{Body: fields}, nil
}
