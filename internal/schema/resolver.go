package schema

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/arkivoapp/solr-connector/internal/errors"
	"github.com/arkivoapp/solr-connector/internal/solr"
)

// Fetcher retrieves the remote schema document. *solr.Client satisfies it.
type Fetcher interface {
	FetchSchema(ctx context.Context) (*solr.Schema, error)
	Endpoint() string
}

// wildcard is the dynamic-field marker character.
const wildcard = '*'

type dynamicPattern struct {
	literal string // pattern text without the wildcard
	field   solr.SchemaFieldDef
}

// Resolver resolves field names against one core's schema. It fetches the
// schema at most once and memoizes every lookup, so an instance is scoped
// to one core and one request or job. Instances are not safe for use from
// multiple goroutines.
type Resolver struct {
	fetcher Fetcher
	logger  *slog.Logger

	once     sync.Once
	fetchErr error

	statics map[string]solr.SchemaFieldDef
	types   map[string]solr.SchemaTypeDef

	// Dynamic patterns bucketed by their fixed edge character: prefix
	// patterns ("dcterms_*") by first literal char, suffix patterns
	// ("*_txt") by last literal char. The prefix bucket is probed first;
	// that order is load-bearing for names both would match.
	prefixes map[byte][]dynamicPattern
	suffixes map[byte][]dynamicPattern

	resolved map[string]*Field // includes nil results
}

// NewResolver builds a resolver over the given schema source.
func NewResolver(fetcher Fetcher, logger *slog.Logger) *Resolver {
	return &Resolver{
		fetcher:  fetcher,
		logger:   logger,
		statics:  map[string]solr.SchemaFieldDef{},
		types:    map[string]solr.SchemaTypeDef{},
		prefixes: map[byte][]dynamicPattern{},
		suffixes: map[byte][]dynamicPattern{},
		resolved: map[string]*Field{},
	}
}

// load fetches and indexes the schema once. A fetch failure leaves every
// map empty: lookups then resolve to nil and Available reports the cause.
func (r *Resolver) load(ctx context.Context) {
	r.once.Do(func() {
		remote, err := r.fetcher.FetchSchema(ctx)
		if err != nil {
			r.fetchErr = err
			if r.logger != nil {
				r.logger.Warn("schema fetch failed, continuing without type information",
					"endpoint", r.fetcher.Endpoint(),
					"error", err,
				)
			}
			return
		}

		for _, f := range remote.Fields {
			r.statics[f.Name] = f
		}
		for _, t := range remote.FieldTypes {
			r.types[t.Name] = t
		}
		for _, f := range remote.DynamicFields {
			name := f.Name
			if len(name) < 2 {
				continue
			}
			switch {
			case name[len(name)-1] == wildcard:
				p := dynamicPattern{literal: name[:len(name)-1], field: f}
				key := p.literal[0]
				r.prefixes[key] = append(r.prefixes[key], p)
			case name[0] == wildcard:
				p := dynamicPattern{literal: name[1:], field: f}
				key := p.literal[len(p.literal)-1]
				r.suffixes[key] = append(r.suffixes[key], p)
			}
		}
	})
}

// Available reports whether type information could be loaded. When the
// schema is unreachable it returns an Unavailable error naming the
// endpoint, credentials redacted.
func (r *Resolver) Available(ctx context.Context) error {
	r.load(ctx)
	if r.fetchErr != nil {
		return errors.Unavailablef("solr schema unreachable at %s", r.fetcher.Endpoint()).WithCause(r.fetchErr)
	}
	return nil
}

// GetField resolves a field name to its schema view, or nil when neither a
// static field nor a dynamic pattern covers it. Results, including misses,
// are cached for the resolver's lifetime.
func (r *Resolver) GetField(ctx context.Context, name string) *Field {
	r.load(ctx)

	if f, ok := r.resolved[name]; ok {
		return f
	}
	f := r.resolve(name)
	r.resolved[name] = f
	return f
}

func (r *Resolver) resolve(name string) *Field {
	if def, ok := r.statics[name]; ok {
		return r.build(name, def)
	}
	if name == "" {
		return nil
	}

	for _, p := range r.prefixes[name[0]] {
		if strings.HasPrefix(name, p.literal) {
			return r.build(name, p.field)
		}
	}
	for _, p := range r.suffixes[name[len(name)-1]] {
		if strings.HasSuffix(name, p.literal) {
			return r.build(name, p.field)
		}
	}
	return nil
}

// build synthesizes the resolved field, with multivalued falling back from
// the field instance to its type definition.
func (r *Resolver) build(name string, def solr.SchemaFieldDef) *Field {
	multi := false
	if def.MultiValued != nil {
		multi = *def.MultiValued
	} else if t, ok := r.types[def.Type]; ok {
		multi = t.MultiValued
	}
	return &Field{
		Name:        name,
		TypeName:    def.Type,
		multiValued: multi,
	}
}
