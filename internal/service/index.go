package service

import (
	"context"
	"log/slog"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/errors"
	"github.com/arkivoapp/solr-connector/internal/extract"
	"github.com/arkivoapp/solr-connector/internal/format"
	"github.com/arkivoapp/solr-connector/internal/indexer"
	"github.com/arkivoapp/solr-connector/internal/repo"
	"github.com/arkivoapp/solr-connector/internal/store"
)

// IndexService runs indexing jobs: single-resource upserts and deletes
// driven by host platform events, and full reindex batches.
type IndexService struct {
	store      store.Store
	reader     repo.Reader
	extractors *extract.Registry
	formatters *format.Registry
	logger     *slog.Logger
}

// NewIndexService creates a new indexing service.
func NewIndexService(st store.Store, reader repo.Reader, logger *slog.Logger) *IndexService {
	return &IndexService{
		store:      st,
		reader:     reader,
		extractors: extract.NewRegistry(),
		formatters: format.NewRegistry(),
		logger:     logger,
	}
}

func (s *IndexService) indexerFor(rt *coreRuntime) *indexer.Indexer {
	opts := indexer.Options{
		ResourceNameField: rt.resourceNameField(),
		IsPublicField:     rt.isPublicField(),
		SitesField:        rt.sitesField(),
		OwnerField:        rt.ownerField(),
	}
	return indexer.New(rt.client, rt.resolver, rt.fieldMap, s.extractors, s.formatters, opts, s.logger)
}

// IndexResource fetches one resource from the host platform and indexes
// it into one core.
func (s *IndexService) IndexResource(ctx context.Context, coreID string, name domain.ResourceName, resourceID int64) error {
	if !name.IsConcrete() {
		return errors.Validationf("cannot index resource type %q", name)
	}
	if s.reader == nil {
		return errors.NotConfigured("no host repository configured")
	}

	rt, err := buildRuntime(ctx, s.store, coreID, s.logger)
	if err != nil {
		return err
	}
	r, err := s.reader.Resource(ctx, name, resourceID)
	if err != nil {
		return errors.Wrapf(err, errors.CodeUnavailable, "read %s %d", name, resourceID)
	}
	if r == nil {
		return errors.NotFoundf("%s %d not found", name, resourceID)
	}
	return s.indexerFor(rt).IndexResource(ctx, r)
}

// DeleteResource removes one resource's document from one core.
func (s *IndexService) DeleteResource(ctx context.Context, coreID string, name domain.ResourceName, resourceID int64) error {
	rt, err := buildRuntime(ctx, s.store, coreID, s.logger)
	if err != nil {
		return err
	}
	return s.indexerFor(rt).DeleteResource(ctx, name, resourceID)
}

// Reindex clears a core and rebuilds it from every indexable resource the
// host platform holds. Per-resource failures are counted in the report,
// not fatal.
func (s *IndexService) Reindex(ctx context.Context, coreID string) (indexer.Report, error) {
	if s.reader == nil {
		return indexer.Report{}, errors.NotConfigured("no host repository configured")
	}
	rt, err := buildRuntime(ctx, s.store, coreID, s.logger)
	if err != nil {
		return indexer.Report{}, err
	}
	ix := s.indexerFor(rt)

	if err := ix.ClearIndex(ctx); err != nil {
		return indexer.Report{}, errors.Wrap(err, errors.CodeUnavailable, "clear index")
	}

	var total indexer.Report
	for _, name := range domain.ConcreteResourceNames {
		resources, err := s.reader.Resources(ctx, name)
		if err != nil {
			return total, errors.Wrapf(err, errors.CodeUnavailable, "read %s", name)
		}
		report, err := ix.IndexResources(ctx, resources)
		total.Total += report.Total
		total.Indexed += report.Indexed
		total.Failed += report.Failed
		if err != nil {
			return total, errors.Wrap(err, errors.CodeUnavailable, "commit batch")
		}
		s.logger.Info("reindexed resource type",
			"core", coreID,
			"resource", name,
			"indexed", report.Indexed,
			"failed", report.Failed,
		)
	}
	return total, nil
}
