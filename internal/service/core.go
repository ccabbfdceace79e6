// Package service implements the connector's application services: core
// and mapping administration, indexing jobs and query execution.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/errors"
	"github.com/arkivoapp/solr-connector/internal/id"
	"github.com/arkivoapp/solr-connector/internal/mapping"
	"github.com/arkivoapp/solr-connector/internal/store"
	"github.com/arkivoapp/solr-connector/internal/validation"
)

// CoreService administers cores, field mappings and search configs.
type CoreService struct {
	store    store.Store
	validate *validation.Validator
	logger   *slog.Logger
}

// NewCoreService creates a new core administration service.
func NewCoreService(st store.Store, logger *slog.Logger) *CoreService {
	return &CoreService{store: st, validate: validation.New(), logger: logger}
}

// translateStoreErr maps persistence sentinels onto coded domain errors.
func translateStoreErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return errors.NotFoundf("%s not found", what)
	case errors.Is(err, store.ErrAlreadyExists):
		return errors.Conflict(what + " already exists")
	default:
		return errors.Wrapf(err, errors.CodeInternal, "%s lookup failed", what)
	}
}

// CreateCoreInput carries the admin request to register a core.
type CreateCoreInput struct {
	Name       string                  `json:"name" validate:"required,min=1,max=190"`
	Connection domain.Connection       `json:"connection"`
	Settings   map[string]string       `json:"settings,omitempty"`
	Suggester  *domain.SuggesterConfig `json:"suggester,omitempty"`
}

// CreateCore registers a new core configuration.
func (s *CoreService) CreateCore(ctx context.Context, in CreateCoreInput) (*domain.SolrCore, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if in.Connection.Host == "" {
		return nil, errors.Validation("connection host is required")
	}
	if in.Connection.Core == "" {
		return nil, errors.Validation("connection core name is required")
	}

	now := time.Now().UTC()
	core := &domain.SolrCore{
		ID:         id.MustGenerate("core"),
		Name:       in.Name,
		Connection: in.Connection,
		Settings:   in.Settings,
		Suggester:  in.Suggester,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateCore(ctx, core); err != nil {
		return nil, translateStoreErr(err, "core")
	}

	s.logger.Info("core created", "id", core.ID, "name", core.Name, "endpoint", core.Connection.Redacted())
	return core, nil
}

// GetCore returns one core by ID.
func (s *CoreService) GetCore(ctx context.Context, coreID string) (*domain.SolrCore, error) {
	core, err := s.store.GetCore(ctx, coreID)
	if err != nil {
		return nil, translateStoreErr(err, "core")
	}
	return core, nil
}

// ListCores returns all configured cores.
func (s *CoreService) ListCores(ctx context.Context) ([]*domain.SolrCore, error) {
	cores, err := s.store.ListCores(ctx)
	if err != nil {
		return nil, translateStoreErr(err, "core")
	}
	return cores, nil
}

// UpdateCoreInput carries a partial core update. Nil fields keep their
// stored value; Settings merges key-wise, an empty value removing the key.
type UpdateCoreInput struct {
	Name       *string                 `json:"name,omitempty" validate:"omitempty,min=1,max=190"`
	Connection *domain.Connection      `json:"connection,omitempty"`
	Settings   map[string]string       `json:"settings,omitempty"`
	Suggester  *domain.SuggesterConfig `json:"suggester,omitempty"`
}

// UpdateCore applies a partial update to a core.
func (s *CoreService) UpdateCore(ctx context.Context, coreID string, in UpdateCoreInput) (*domain.SolrCore, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	core, err := s.store.GetCore(ctx, coreID)
	if err != nil {
		return nil, translateStoreErr(err, "core")
	}

	if in.Name != nil {
		core.Name = *in.Name
	}
	if in.Connection != nil {
		core.Connection = *in.Connection
	}
	if in.Suggester != nil {
		core.Suggester = in.Suggester
	}
	if len(in.Settings) > 0 {
		if core.Settings == nil {
			core.Settings = map[string]string{}
		}
		for k, v := range in.Settings {
			if v == "" {
				delete(core.Settings, k)
				continue
			}
			core.Settings[k] = v
		}
	}
	core.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateCore(ctx, core); err != nil {
		return nil, translateStoreErr(err, "core")
	}
	return core, nil
}

// DeleteCore removes a core. Its mappings and search configs go with it.
func (s *CoreService) DeleteCore(ctx context.Context, coreID string) error {
	if err := s.store.DeleteCore(ctx, coreID); err != nil {
		return translateStoreErr(err, "core")
	}
	s.logger.Info("core deleted", "id", coreID)
	return nil
}

// MappingInput carries the admin request to create or replace a mapping.
type MappingInput struct {
	ResourceName domain.ResourceName `json:"resource_name" validate:"required"`
	FieldName    string              `json:"field_name" validate:"required"`
	Alias        string              `json:"alias,omitempty"`
	Source       string              `json:"source" validate:"required"`
	Pool         domain.Pool         `json:"pool,omitempty"`
	Settings     map[string]string   `json:"settings,omitempty"`
}

func (in MappingInput) validate() error {
	if !in.ResourceName.IsConcrete() && !in.ResourceName.IsWildcard() {
		return errors.Validationf("unknown resource name %q", in.ResourceName)
	}
	if src := mapping.ParseSource(in.Source); src.Kind == mapping.SourceInvalid {
		return errors.Validationf("malformed source path %q", in.Source)
	}
	return nil
}

// CreateMapping adds a field mapping to a core. A duplicate
// (resource, field, source) row is tolerated; the newest row wins at
// index time.
func (s *CoreService) CreateMapping(ctx context.Context, coreID string, in MappingInput) (*domain.FieldMapping, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCore(ctx, coreID); err != nil {
		return nil, translateStoreErr(err, "core")
	}

	now := time.Now().UTC()
	m := &domain.FieldMapping{
		ID:           id.MustGenerate("map"),
		CoreID:       coreID,
		ResourceName: in.ResourceName,
		FieldName:    in.FieldName,
		Alias:        in.Alias,
		Source:       in.Source,
		Pool:         in.Pool,
		Settings:     in.Settings,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateMapping(ctx, m); err != nil {
		return nil, translateStoreErr(err, "mapping")
	}
	return m, nil
}

// GetMapping returns one mapping by ID.
func (s *CoreService) GetMapping(ctx context.Context, mappingID string) (*domain.FieldMapping, error) {
	m, err := s.store.GetMapping(ctx, mappingID)
	if err != nil {
		return nil, translateStoreErr(err, "mapping")
	}
	return m, nil
}

// ListMappings returns a core's mappings in declaration order.
func (s *CoreService) ListMappings(ctx context.Context, coreID string) ([]*domain.FieldMapping, error) {
	mappings, err := s.store.ListMappings(ctx, coreID)
	if err != nil {
		return nil, translateStoreErr(err, "mapping")
	}
	return mappings, nil
}

// UpdateMapping replaces a mapping's definition. A field rename rewrites
// the field-name keys stored in the core's search configs.
func (s *CoreService) UpdateMapping(ctx context.Context, mappingID string, in MappingInput) (*domain.FieldMapping, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	m, err := s.store.GetMapping(ctx, mappingID)
	if err != nil {
		return nil, translateStoreErr(err, "mapping")
	}

	oldField := m.FieldName
	m.ResourceName = in.ResourceName
	m.FieldName = in.FieldName
	m.Alias = in.Alias
	m.Source = in.Source
	m.Pool = in.Pool
	m.Settings = in.Settings
	m.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateMapping(ctx, m); err != nil {
		return nil, translateStoreErr(err, "mapping")
	}

	if oldField != m.FieldName {
		if err := s.propagateRename(ctx, m.CoreID, oldField, m.FieldName); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DeleteMapping removes a mapping and scrubs its field name from the
// core's search configs, unless another mapping still populates the same
// field.
func (s *CoreService) DeleteMapping(ctx context.Context, mappingID string) error {
	m, err := s.store.GetMapping(ctx, mappingID)
	if err != nil {
		return translateStoreErr(err, "mapping")
	}
	if err := s.store.DeleteMapping(ctx, m.ID); err != nil {
		return translateStoreErr(err, "mapping")
	}

	remaining, err := s.store.ListMappings(ctx, m.CoreID)
	if err != nil {
		return translateStoreErr(err, "mapping")
	}
	for _, other := range remaining {
		if other.FieldName == m.FieldName {
			return nil
		}
	}
	return s.propagateRemoval(ctx, m.CoreID, m.FieldName)
}

func (s *CoreService) propagateRename(ctx context.Context, coreID, oldField, newField string) error {
	configs, err := s.store.ListSearchConfigs(ctx, coreID)
	if err != nil {
		return translateStoreErr(err, "search config")
	}
	for _, cfg := range configs {
		if !renameFieldKeys(cfg.Settings, oldField, newField) {
			continue
		}
		cfg.UpdatedAt = time.Now().UTC()
		if err := s.store.UpdateSearchConfig(ctx, cfg); err != nil {
			return translateStoreErr(err, "search config")
		}
		s.logger.Info("rewrote search config for field rename",
			"config", cfg.ID, "old", oldField, "new", newField)
	}
	return nil
}

func (s *CoreService) propagateRemoval(ctx context.Context, coreID, field string) error {
	configs, err := s.store.ListSearchConfigs(ctx, coreID)
	if err != nil {
		return translateStoreErr(err, "search config")
	}
	for _, cfg := range configs {
		if !removeFieldKeys(cfg.Settings, field) {
			continue
		}
		cfg.UpdatedAt = time.Now().UTC()
		if err := s.store.UpdateSearchConfig(ctx, cfg); err != nil {
			return translateStoreErr(err, "search config")
		}
		s.logger.Info("scrubbed search config for deleted field",
			"config", cfg.ID, "field", field)
	}
	return nil
}

// SearchConfigInput carries the host platform's opaque settings bag.
type SearchConfigInput struct {
	Name     string         `json:"name" validate:"required,min=1,max=190"`
	Settings map[string]any `json:"settings,omitempty"`
}

// CreateSearchConfig stores a search config for a core.
func (s *CoreService) CreateSearchConfig(ctx context.Context, coreID string, in SearchConfigInput) (*domain.SearchConfig, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCore(ctx, coreID); err != nil {
		return nil, translateStoreErr(err, "core")
	}

	now := time.Now().UTC()
	cfg := &domain.SearchConfig{
		ID:        id.MustGenerate("cfg"),
		CoreID:    coreID,
		Name:      in.Name,
		Settings:  in.Settings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateSearchConfig(ctx, cfg); err != nil {
		return nil, translateStoreErr(err, "search config")
	}
	return cfg, nil
}

// GetSearchConfig returns one search config by ID.
func (s *CoreService) GetSearchConfig(ctx context.Context, cfgID string) (*domain.SearchConfig, error) {
	cfg, err := s.store.GetSearchConfig(ctx, cfgID)
	if err != nil {
		return nil, translateStoreErr(err, "search config")
	}
	return cfg, nil
}

// ListSearchConfigs returns a core's search configs.
func (s *CoreService) ListSearchConfigs(ctx context.Context, coreID string) ([]*domain.SearchConfig, error) {
	configs, err := s.store.ListSearchConfigs(ctx, coreID)
	if err != nil {
		return nil, translateStoreErr(err, "search config")
	}
	return configs, nil
}

// UpdateSearchConfig replaces a search config's name and settings.
func (s *CoreService) UpdateSearchConfig(ctx context.Context, cfgID string, in SearchConfigInput) (*domain.SearchConfig, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	cfg, err := s.store.GetSearchConfig(ctx, cfgID)
	if err != nil {
		return nil, translateStoreErr(err, "search config")
	}

	cfg.Name = in.Name
	cfg.Settings = in.Settings
	cfg.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateSearchConfig(ctx, cfg); err != nil {
		return nil, translateStoreErr(err, "search config")
	}
	return cfg, nil
}

// DeleteSearchConfig removes a search config.
func (s *CoreService) DeleteSearchConfig(ctx context.Context, cfgID string) error {
	if err := s.store.DeleteSearchConfig(ctx, cfgID); err != nil {
		return translateStoreErr(err, "search config")
	}
	return nil
}
