// Package mapping turns a core's FieldMapping rows into the structures the
// write and read paths share: parsed source paths, per-resource lookup and
// the stable field ordering used by the query-building UI.
package mapping

import "strings"

// SourceKind tags the parsed form of a mapping source expression.
type SourceKind int

const (
	// SourceInvalid marks unknown or malformed expressions. They extract
	// nothing; a bad mapping row must never break indexing.
	SourceInvalid SourceKind = iota
	// SourceProperty is a bare property term such as "dcterms:title".
	SourceProperty
	// SourceStructural is a computed attribute, possibly one hop through a
	// linked resource ("o:id", "owner/o:id", "site/o:id", ...).
	SourceStructural
	// SourceAnnotation traverses per-value annotations:
	// "property/annotation" or "property/annotation/property".
	SourceAnnotation
)

// Structural tokens understood by the extractors.
const (
	TokenID               = "o:id"
	TokenIsPublic         = "is_public"
	TokenOwnerID          = "owner/o:id"
	TokenItemSetID        = "item_set/o:id"
	TokenItemID           = "item/o:id"
	TokenResourceClass    = "resource_class/o:term"
	TokenResourceTemplate = "resource_template/o:label"
	TokenSiteID           = "site/o:id"
)

var structuralTokens = map[string]struct{}{
	TokenID:               {},
	TokenIsPublic:         {},
	TokenOwnerID:          {},
	TokenItemSetID:        {},
	TokenItemID:           {},
	TokenResourceClass:    {},
	TokenResourceTemplate: {},
	TokenSiteID:           {},
}

// annotationMarker separates a base property from its annotation selector.
const annotationMarker = "annotation"

// Source is the parsed, tagged representation of a mapping source
// expression. It is produced once per mapping and reused across
// extractions.
type Source struct {
	Kind SourceKind

	// Term is the property term for SourceProperty, or the base property
	// for SourceAnnotation.
	Term string

	// Token is the structural token for SourceStructural.
	Token string

	// AnnotationProperty is the targeted annotation property for
	// SourceAnnotation; empty means "all annotation properties".
	AnnotationProperty string
}

// ParseSource parses a source expression. It never fails: anything it does
// not recognize becomes SourceInvalid.
func ParseSource(raw string) Source {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{Kind: SourceInvalid}
	}

	if _, ok := structuralTokens[raw]; ok {
		return Source{Kind: SourceStructural, Token: raw}
	}

	parts := strings.Split(raw, "/")
	switch len(parts) {
	case 1:
		if isPropertyTerm(parts[0]) {
			return Source{Kind: SourceProperty, Term: parts[0]}
		}
	case 2:
		if parts[1] == annotationMarker && isPropertyTerm(parts[0]) {
			return Source{Kind: SourceAnnotation, Term: parts[0]}
		}
	case 3:
		if parts[1] == annotationMarker && isPropertyTerm(parts[0]) && isPropertyTerm(parts[2]) {
			return Source{Kind: SourceAnnotation, Term: parts[0], AnnotationProperty: parts[2]}
		}
	}
	return Source{Kind: SourceInvalid}
}

// isPropertyTerm checks the "vocabulary:localName" shape.
func isPropertyTerm(s string) bool {
	vocab, local, ok := strings.Cut(s, ":")
	return ok && vocab != "" && local != "" && !strings.Contains(local, ":")
}
