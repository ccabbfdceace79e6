// Package indexer assembles index documents from repository resources and
// submits them to the engine: one document per resource, fields populated
// by walking the core's field map through the extractor, formatter and
// schema-cardinality stages.
package indexer

import (
	"context"
	"log/slog"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/extract"
	"github.com/arkivoapp/solr-connector/internal/format"
	"github.com/arkivoapp/solr-connector/internal/mapping"
	"github.com/arkivoapp/solr-connector/internal/schema"
	"github.com/arkivoapp/solr-connector/internal/solr"
)

// Engine is the write surface of the index transport. *solr.Client
// satisfies it.
type Engine interface {
	Add(ctx context.Context, docs []solr.Document) error
	Commit(ctx context.Context) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByQuery(ctx context.Context, query string) error
}

// FieldResolver is the schema lookup surface. *schema.Resolver satisfies
// it.
type FieldResolver interface {
	GetField(ctx context.Context, name string) *schema.Field
	Available(ctx context.Context) error
}

// DefaultResourceNameField is the index field carrying the resource type
// tag. It backs result grouping on the read path.
const DefaultResourceNameField = "resource_name_s"

// Options configures the globally seeded structural fields. Empty names
// disable the corresponding field; the resource name field defaults.
type Options struct {
	ResourceNameField string
	IsPublicField     string
	SitesField        string
	OwnerField        string
}

// Report summarizes a batch. Failures never abort a batch; they are
// logged and counted here.
type Report struct {
	Total   int
	Indexed int
	Failed  int
}

// Indexer is the write-path orchestrator for one core. Instances are
// request/job scoped like the resolver they hold.
type Indexer struct {
	engine     Engine
	resolver   FieldResolver
	fieldMap   *mapping.FieldMap
	extractors *extract.Registry
	formatters *format.Registry
	opts       Options
	logger     *slog.Logger
}

// New builds an indexer for one core.
func New(engine Engine, resolver FieldResolver, fieldMap *mapping.FieldMap, extractors *extract.Registry, formatters *format.Registry, opts Options, logger *slog.Logger) *Indexer {
	if opts.ResourceNameField == "" {
		opts.ResourceNameField = DefaultResourceNameField
	}
	return &Indexer{
		engine:     engine,
		resolver:   resolver,
		fieldMap:   fieldMap,
		extractors: extractors,
		formatters: formatters,
		opts:       opts,
		logger:     logger,
	}
}

// IndexResource indexes a single resource and commits.
func (ix *Indexer) IndexResource(ctx context.Context, r *domain.Resource) error {
	doc := ix.BuildDocument(ctx, r)
	if err := ix.engine.Add(ctx, []solr.Document{doc}); err != nil {
		return err
	}
	return ix.engine.Commit(ctx)
}

// IndexResources indexes a batch sequentially, deferring the commit to the
// end. A resource the engine rejects is logged and counted; the rest of
// the batch still goes through.
func (ix *Indexer) IndexResources(ctx context.Context, resources []*domain.Resource) (Report, error) {
	report := Report{Total: len(resources)}
	for _, r := range resources {
		doc := ix.BuildDocument(ctx, r)
		if err := ix.engine.Add(ctx, []solr.Document{doc}); err != nil {
			report.Failed++
			ix.logger.Error("failed to index resource",
				"resource", r.Name,
				"id", r.ID,
				"error", err,
			)
			continue
		}
		report.Indexed++
	}
	if err := ix.engine.Commit(ctx); err != nil {
		return report, err
	}
	return report, nil
}

// DeleteResource removes one resource's document and commits.
func (ix *Indexer) DeleteResource(ctx context.Context, name domain.ResourceName, id int64) error {
	if err := ix.engine.DeleteByID(ctx, domain.DocumentID(name, id)); err != nil {
		return err
	}
	return ix.engine.Commit(ctx)
}

// ClearIndex removes every document and commits.
func (ix *Indexer) ClearIndex(ctx context.Context) error {
	if err := ix.engine.DeleteByQuery(ctx, "*:*"); err != nil {
		return err
	}
	return ix.engine.Commit(ctx)
}

// contribution is one mapping entry's extracted values for the document.
// Duplicate (resource, field, source) rows are tolerated: the last row
// overwrites the earlier contribution.
type contribution struct {
	fieldName string
	values    []string
}

// BuildDocument assembles the flat document for one resource.
func (ix *Indexer) BuildDocument(ctx context.Context, r *domain.Resource) solr.Document {
	doc := solr.Document{"id": domain.DocumentID(r.Name, r.ID)}
	doc[ix.opts.ResourceNameField] = string(r.Name)
	if ix.opts.IsPublicField != "" {
		doc[ix.opts.IsPublicField] = r.IsPublic
	}
	if ix.opts.SitesField != "" {
		for _, siteID := range r.SiteIDs {
			doc.Add(ix.opts.SitesField, siteID)
		}
	}
	if ix.opts.OwnerField != "" && r.OwnerID != 0 {
		doc[ix.opts.OwnerField] = r.OwnerID
	}

	extractor := ix.extractors.Get(r.Name)

	var order []string
	contributions := map[string]contribution{}

	for _, entry := range ix.fieldMap.ForResource(r.Name) {
		if !entry.Pool.Matches(r) {
			continue
		}

		values := extractor.Extract(r, entry)
		if len(values) > 0 {
			if f := ix.formatters.Get(entry.Formatter()); f != nil {
				values = applyFormatter(f, values)
			}
		}
		values = ix.clamp(ctx, entry.FieldName, values)

		key := string(entry.ResourceName) + "\x00" + entry.FieldName + "\x00" + entry.FieldMapping.Source
		if _, seen := contributions[key]; !seen {
			order = append(order, key)
		}
		contributions[key] = contribution{fieldName: entry.FieldName, values: values}
	}

	for _, key := range order {
		c := contributions[key]
		for _, v := range c.values {
			doc.Add(c.fieldName, v)
		}
	}
	return doc
}

// clamp truncates the value sequence to its first element when the target
// field is declared single valued. The truncation is deliberate, lossy and
// first-wins. When the schema is unreachable the field is dropped: the
// clamp is the one stage that hard-requires type information, and the
// failure stays scoped to this single field.
func (ix *Indexer) clamp(ctx context.Context, fieldName string, values []string) []string {
	if len(values) == 0 {
		return nil
	}
	field := ix.resolver.GetField(ctx, fieldName)
	if field == nil {
		if err := ix.resolver.Available(ctx); err != nil {
			ix.logger.Warn("dropping field, schema unavailable", "field", fieldName, "error", err)
			return nil
		}
		// Field unknown to the schema: pass values through untouched and
		// let the engine decide.
		return values
	}
	if !field.MultiValued() && len(values) > 1 {
		return values[:1]
	}
	return values
}

func applyFormatter(f format.Formatter, values []string) []string {
	out := values[:0:0]
	for _, raw := range values {
		if v, ok := f.Format(raw); ok {
			out = append(out, v)
		}
	}
	return out
}
