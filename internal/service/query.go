package service

import (
	"context"
	"log/slog"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/querier"
	"github.com/arkivoapp/solr-connector/internal/store"
)

// QueryService executes structured queries and suggestion lookups against
// configured cores, and exposes the mapped-field picklists the host
// platform's query UI builds from.
type QueryService struct {
	store  store.Store
	logger *slog.Logger
}

// NewQueryService creates a new query service.
func NewQueryService(st store.Store, logger *slog.Logger) *QueryService {
	return &QueryService{store: st, logger: logger}
}

func (s *QueryService) querierFor(rt *coreRuntime) *querier.Querier {
	opts := querier.Options{
		ResourceNameField: rt.resourceNameField(),
		SitesField:        rt.sitesField(),
		MinMatch:          rt.core.Settings["mm"],
		Tie:               rt.core.Settings["tie"],
		Suggester:         rt.core.Suggester,
	}
	return querier.New(rt.client, rt.resolver, rt.fieldMap, opts, s.logger)
}

// Search runs one structured query against a core. Configuration problems
// (unknown core) are errors; engine trouble comes back inside the
// response.
func (s *QueryService) Search(ctx context.Context, coreID string, query querier.Query) (*querier.Response, error) {
	rt, err := buildRuntime(ctx, s.store, coreID, s.logger)
	if err != nil {
		return nil, err
	}
	return s.querierFor(rt).Search(ctx, query), nil
}

// Suggest runs one autocomplete lookup against a core.
func (s *QueryService) Suggest(ctx context.Context, coreID, text string) (*querier.SuggestResponse, error) {
	rt, err := buildRuntime(ctx, s.store, coreID, s.logger)
	if err != nil {
		return nil, err
	}
	return s.querierFor(rt).QuerySuggestions(ctx, text), nil
}

// Fields lists a core's queryable fields, optionally restricted to one
// resource type.
func (s *QueryService) Fields(ctx context.Context, coreID string, name domain.ResourceName) ([]querier.FieldInfo, error) {
	rt, err := buildRuntime(ctx, s.store, coreID, s.logger)
	if err != nil {
		return nil, err
	}
	return s.querierFor(rt).AvailableFields(ctx, name), nil
}

// SortFields lists the fields a core can sort on.
func (s *QueryService) SortFields(ctx context.Context, coreID string, name domain.ResourceName) ([]querier.FieldInfo, error) {
	rt, err := buildRuntime(ctx, s.store, coreID, s.logger)
	if err != nil {
		return nil, err
	}
	return s.querierFor(rt).AvailableSortFields(ctx, name), nil
}

// FacetFields lists the fields a core can facet on.
func (s *QueryService) FacetFields(ctx context.Context, coreID string, name domain.ResourceName) ([]querier.FieldInfo, error) {
	rt, err := buildRuntime(ctx, s.store, coreID, s.logger)
	if err != nil {
		return nil, err
	}
	return s.querierFor(rt).AvailableFacetFields(ctx, name), nil
}

// Ping checks a core's engine reachability.
func (s *QueryService) Ping(ctx context.Context, coreID string) error {
	rt, err := buildRuntime(ctx, s.store, coreID, s.logger)
	if err != nil {
		return err
	}
	return rt.client.Ping(ctx)
}
