// Package repo reads hydrated resources from the host repository
// platform. The connector never writes back; the platform's persistence,
// ACLs and event bus stay on its side of the boundary.
package repo

import (
	"context"

	"github.com/arkivoapp/solr-connector/internal/domain"
)

// Reader is the host platform's resource read API as the connector needs
// it: single-resource hydration plus full listing per type for reindex
// jobs.
type Reader interface {
	Resource(ctx context.Context, name domain.ResourceName, id int64) (*domain.Resource, error)
	Resources(ctx context.Context, name domain.ResourceName) ([]*domain.Resource, error)
}

// MemoryReader is an in-memory Reader for tests and local development.
type MemoryReader struct {
	resources map[domain.ResourceName]map[int64]*domain.Resource
	order     map[domain.ResourceName][]int64
}

// NewMemoryReader builds an empty in-memory reader.
func NewMemoryReader() *MemoryReader {
	return &MemoryReader{
		resources: map[domain.ResourceName]map[int64]*domain.Resource{},
		order:     map[domain.ResourceName][]int64{},
	}
}

// Put adds or replaces a resource.
func (m *MemoryReader) Put(r *domain.Resource) {
	byID, ok := m.resources[r.Name]
	if !ok {
		byID = map[int64]*domain.Resource{}
		m.resources[r.Name] = byID
	}
	if _, exists := byID[r.ID]; !exists {
		m.order[r.Name] = append(m.order[r.Name], r.ID)
	}
	byID[r.ID] = r
}

// Resource implements Reader.
func (m *MemoryReader) Resource(_ context.Context, name domain.ResourceName, id int64) (*domain.Resource, error) {
	if r, ok := m.resources[name][id]; ok {
		return r, nil
	}
	return nil, nil
}

// Resources implements Reader, returning resources in insertion order.
func (m *MemoryReader) Resources(_ context.Context, name domain.ResourceName) ([]*domain.Resource, error) {
	ids := m.order[name]
	out := make([]*domain.Resource, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.resources[name][id])
	}
	return out, nil
}
