// Package extract evaluates mapping source expressions against hydrated
// repository resources. Extraction is deliberately forgiving: unknown
// paths, missing properties and dangling links all produce zero values,
// never errors, so one bad mapping degrades the index instead of aborting
// a batch.
package extract

import (
	"strconv"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/mapping"
)

// Extractor evaluates one mapping entry against one resource, returning
// the raw values in a stable order: property value declaration order, then
// annotation-property declaration order, then sub-value order.
type Extractor interface {
	Extract(r *domain.Resource, e mapping.Entry) []string
}

// GenericKey is the registry fallback key.
const GenericKey = "generic"

// Registry dispatches extractors by resource type tag.
type Registry struct {
	extractors map[string]Extractor
	fallback   Extractor
}

// NewRegistry builds a registry with the built-in extractors registered:
// a generic one plus the item, item-set and media specializations.
func NewRegistry() *Registry {
	generic := &GenericExtractor{}
	r := &Registry{
		extractors: map[string]Extractor{},
		fallback:   generic,
	}
	r.Register(GenericKey, generic)
	r.Register(string(domain.NameItems), &ItemExtractor{GenericExtractor: generic})
	r.Register(string(domain.NameItemSets), generic)
	r.Register(string(domain.NameMedia), &MediaExtractor{GenericExtractor: generic})
	return r
}

// Register adds or replaces the extractor for a resource type tag.
func (r *Registry) Register(name string, e Extractor) {
	r.extractors[name] = e
}

// Get returns the extractor for a resource type tag, falling back to the
// generic extractor for unregistered tags.
func (r *Registry) Get(name domain.ResourceName) Extractor {
	if e, ok := r.extractors[string(name)]; ok {
		return e
	}
	return r.fallback
}

// GenericExtractor covers every source form that does not depend on the
// resource type: property references, annotation paths and the structural
// tokens shared by all resources.
type GenericExtractor struct{}

// Extract implements Extractor.
func (g *GenericExtractor) Extract(r *domain.Resource, e mapping.Entry) []string {
	switch e.Source.Kind {
	case mapping.SourceProperty:
		return g.extractProperty(r, e)
	case mapping.SourceAnnotation:
		return g.extractAnnotations(r, e)
	case mapping.SourceStructural:
		return g.extractStructural(r, e.Source.Token)
	default:
		return nil
	}
}

// extractProperty gathers every value of the property, applying the
// mapping pool's per-value data-type filter.
func (g *GenericExtractor) extractProperty(r *domain.Resource, e mapping.Entry) []string {
	values := r.ValuesFor(e.Source.Term)
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !e.Pool.MatchesValue(v) {
			continue
		}
		if c := v.Content(); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// extractAnnotations walks the base property's values and emits annotation
// sub-values: all of them for an untargeted path, or only the targeted
// annotation property's. Base values without annotations contribute
// nothing.
func (g *GenericExtractor) extractAnnotations(r *domain.Resource, e mapping.Entry) []string {
	var out []string
	for _, v := range r.ValuesFor(e.Source.Term) {
		for _, set := range v.Annotations {
			if e.Source.AnnotationProperty != "" && set.Property != e.Source.AnnotationProperty {
				continue
			}
			for _, av := range set.Values {
				if c := av.Content(); c != "" {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

func (g *GenericExtractor) extractStructural(r *domain.Resource, token string) []string {
	switch token {
	case mapping.TokenID:
		return []string{strconv.FormatInt(r.ID, 10)}
	case mapping.TokenIsPublic:
		return []string{strconv.FormatBool(r.IsPublic)}
	case mapping.TokenOwnerID:
		if r.OwnerID == 0 {
			return nil
		}
		return []string{strconv.FormatInt(r.OwnerID, 10)}
	case mapping.TokenResourceClass:
		if r.ResourceClass == "" {
			return nil
		}
		return []string{r.ResourceClass}
	case mapping.TokenResourceTemplate:
		if r.ResourceTemplate == "" {
			return nil
		}
		return []string{r.ResourceTemplate}
	case mapping.TokenSiteID:
		return formatIDs(r.SiteIDs)
	default:
		return nil
	}
}

// ItemExtractor adds the item-only structural relation to its item sets.
type ItemExtractor struct {
	*GenericExtractor
}

// Extract implements Extractor.
func (x *ItemExtractor) Extract(r *domain.Resource, e mapping.Entry) []string {
	if e.Source.Kind == mapping.SourceStructural && e.Source.Token == mapping.TokenItemSetID {
		return formatIDs(r.ItemSetIDs)
	}
	return x.GenericExtractor.Extract(r, e)
}

// MediaExtractor adds the media-only structural relation to its parent
// item.
type MediaExtractor struct {
	*GenericExtractor
}

// Extract implements Extractor.
func (x *MediaExtractor) Extract(r *domain.Resource, e mapping.Entry) []string {
	if e.Source.Kind == mapping.SourceStructural && e.Source.Token == mapping.TokenItemID {
		if r.ItemID == 0 {
			return nil
		}
		return []string{strconv.FormatInt(r.ItemID, 10)}
	}
	return x.GenericExtractor.Extract(r, e)
}

func formatIDs(ids []int64) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return out
}
