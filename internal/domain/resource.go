// Package domain defines the entities shared across the connector: the
// repository resource model on one side and the Solr core configuration
// (cores, field mappings, search configs) on the other.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ResourceName identifies a repository resource type.
type ResourceName string

// Resource type tags. NameGeneric and NameResources are wildcards: a field
// mapping carrying either applies to every concrete resource type.
const (
	NameItems     ResourceName = "items"
	NameItemSets  ResourceName = "item_sets"
	NameMedia     ResourceName = "media"
	NameGeneric   ResourceName = "generic"
	NameResources ResourceName = "resources"
)

// ConcreteResourceNames lists the indexable resource types in a stable order.
var ConcreteResourceNames = []ResourceName{NameItems, NameItemSets, NameMedia}

// IsWildcard reports whether the name applies to every resource type.
func (n ResourceName) IsWildcard() bool {
	return n == NameGeneric || n == NameResources
}

// IsConcrete reports whether the name is an indexable resource type.
func (n ResourceName) IsConcrete() bool {
	for _, c := range ConcreteResourceNames {
		if n == c {
			return true
		}
	}
	return false
}

// ValueType discriminates the three kinds of property values.
type ValueType string

const (
	ValueLiteral  ValueType = "literal"
	ValueResource ValueType = "resource"
	ValueURI      ValueType = "uri"
)

// Value is one typed value of a resource property. Exactly one of Literal,
// ResourceID or URI carries content depending on Type.
type Value struct {
	Type       ValueType
	Literal    string
	ResourceID int64
	URI        string
	Label      string
	Lang       string
	IsPublic   bool

	// Annotations are per-value sub-records, in declaration order.
	Annotations []AnnotationSet
}

// AnnotationSet groups the annotation values attached to one value under a
// single annotation property (e.g. "dcterms:source").
type AnnotationSet struct {
	Property string
	Values   []Value
}

// Content returns the raw index-bound content of the value: literal text,
// the linked resource's numeric id, or the URI.
func (v Value) Content() string {
	switch v.Type {
	case ValueResource:
		return strconv.FormatInt(v.ResourceID, 10)
	case ValueURI:
		return v.URI
	default:
		return v.Literal
	}
}

// PropertyValues holds the values of one property in declaration order.
type PropertyValues struct {
	Term   string
	Values []Value
}

// Resource is a fully hydrated repository resource as exposed by the host
// platform's read API. Values keeps property declaration order.
type Resource struct {
	ID               int64
	Name             ResourceName
	IsPublic         bool
	OwnerID          int64
	SiteIDs          []int64
	ResourceClass    string // e.g. "foaf:Person"
	ResourceTemplate string // template label
	ItemSetIDs       []int64 // items only
	ItemID           int64   // media only: parent item
	Values           []PropertyValues
}

// ValuesFor returns the values of the named property, or nil.
func (r *Resource) ValuesFor(term string) []Value {
	for _, pv := range r.Values {
		if pv.Term == term {
			return pv.Values
		}
	}
	return nil
}

// DocumentID returns the index document id for a resource, composed as
// "resourceName:resourceId".
func DocumentID(name ResourceName, id int64) string {
	return fmt.Sprintf("%s:%d", name, id)
}

// SplitDocumentID recovers the resource name and id from an index document
// id. The second return is false for ids not produced by DocumentID.
func SplitDocumentID(docID string) (ResourceName, int64, bool) {
	name, rawID, ok := strings.Cut(docID, ":")
	if !ok {
		return "", 0, false
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return ResourceName(name), id, true
}
