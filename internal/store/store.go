// Package store defines the persistence interface for the connector's own
// configuration: cores, field mappings and search configs. Repository
// resources are never persisted here; they stay on the host platform.
package store

import (
	"context"

	"github.com/arkivoapp/solr-connector/internal/domain"
)

// Store is the interface for all persistence operations.
type Store interface {
	Close() error

	// Cores
	CreateCore(ctx context.Context, core *domain.SolrCore) error
	GetCore(ctx context.Context, id string) (*domain.SolrCore, error)
	GetCoreByName(ctx context.Context, name string) (*domain.SolrCore, error)
	ListCores(ctx context.Context) ([]*domain.SolrCore, error)
	UpdateCore(ctx context.Context, core *domain.SolrCore) error
	DeleteCore(ctx context.Context, id string) error

	// Field mappings
	CreateMapping(ctx context.Context, m *domain.FieldMapping) error
	GetMapping(ctx context.Context, id string) (*domain.FieldMapping, error)
	ListMappings(ctx context.Context, coreID string) ([]*domain.FieldMapping, error)
	UpdateMapping(ctx context.Context, m *domain.FieldMapping) error
	DeleteMapping(ctx context.Context, id string) error
	DeleteMappingsForCore(ctx context.Context, coreID string) error

	// Search configs
	CreateSearchConfig(ctx context.Context, cfg *domain.SearchConfig) error
	GetSearchConfig(ctx context.Context, id string) (*domain.SearchConfig, error)
	ListSearchConfigs(ctx context.Context, coreID string) ([]*domain.SearchConfig, error)
	UpdateSearchConfig(ctx context.Context, cfg *domain.SearchConfig) error
	DeleteSearchConfig(ctx context.Context, id string) error
}
