package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/service"
)

func (s *Server) registerSearchConfigRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-search-configs",
		Method:      http.MethodGet,
		Path:        "/api/v1/cores/{coreID}/search-configs",
		Summary:     "List a core's search configs",
		Tags:        []string{"Search configs"},
	}, s.handleListSearchConfigs)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-search-config",
		Method:        http.MethodPost,
		Path:          "/api/v1/cores/{coreID}/search-configs",
		Summary:       "Create a search config",
		Tags:          []string{"Search configs"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateSearchConfig)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-search-config",
		Method:      http.MethodGet,
		Path:        "/api/v1/search-configs/{configID}",
		Summary:     "Get a search config",
		Tags:        []string{"Search configs"},
	}, s.handleGetSearchConfig)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-search-config",
		Method:      http.MethodPut,
		Path:        "/api/v1/search-configs/{configID}",
		Summary:     "Replace a search config",
		Tags:        []string{"Search configs"},
	}, s.handleUpdateSearchConfig)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-search-config",
		Method:      http.MethodDelete,
		Path:        "/api/v1/search-configs/{configID}",
		Summary:     "Delete a search config",
		Tags:        []string{"Search configs"},
	}, s.handleDeleteSearchConfig)
}

// === DTOs ===

// SearchConfigResponse is the wire form of one search config.
type SearchConfigResponse struct {
	ID        string         `json:"id"`
	CoreID    string         `json:"core_id"`
	Name      string         `json:"name"`
	Settings  map[string]any `json:"settings,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toSearchConfigResponse(cfg *domain.SearchConfig) SearchConfigResponse {
	return SearchConfigResponse{
		ID:        cfg.ID,
		CoreID:    cfg.CoreID,
		Name:      cfg.Name,
		Settings:  cfg.Settings,
		CreatedAt: cfg.CreatedAt,
		UpdatedAt: cfg.UpdatedAt,
	}
}

// ListSearchConfigsOutput wraps the search config list for Huma.
type ListSearchConfigsOutput struct {
	Body []SearchConfigResponse
}

// CreateSearchConfigInput is the create request.
type CreateSearchConfigInput struct {
	CoreID string `path:"coreID" doc:"Core ID"`
	Body   service.SearchConfigInput
}

// SearchConfigIDInput addresses one search config by path.
type SearchConfigIDInput struct {
	ConfigID string `path:"configID" doc:"Search config ID"`
}

// UpdateSearchConfigInput is the replace request.
type UpdateSearchConfigInput struct {
	ConfigID string `path:"configID" doc:"Search config ID"`
	Body     service.SearchConfigInput
}

// SearchConfigOutput wraps one search config for Huma.
type SearchConfigOutput struct {
	Body SearchConfigResponse
}

// === Handlers ===

func (s *Server) handleListSearchConfigs(ctx context.Context, input *CoreIDInput) (*ListSearchConfigsOutput, error) {
	configs, err := s.services.Core.ListSearchConfigs(ctx, input.CoreID)
	if err != nil {
		return nil, err
	}

	out := &ListSearchConfigsOutput{Body: make([]SearchConfigResponse, 0, len(configs))}
	for _, cfg := range configs {
		out.Body = append(out.Body, toSearchConfigResponse(cfg))
	}
	return out, nil
}

func (s *Server) handleCreateSearchConfig(ctx context.Context, input *CreateSearchConfigInput) (*SearchConfigOutput, error) {
	cfg, err := s.services.Core.CreateSearchConfig(ctx, input.CoreID, input.Body)
	if err != nil {
		return nil, err
	}
	return &SearchConfigOutput{Body: toSearchConfigResponse(cfg)}, nil
}

func (s *Server) handleGetSearchConfig(ctx context.Context, input *SearchConfigIDInput) (*SearchConfigOutput, error) {
	cfg, err := s.services.Core.GetSearchConfig(ctx, input.ConfigID)
	if err != nil {
		return nil, err
	}
	return &SearchConfigOutput{Body: toSearchConfigResponse(cfg)}, nil
}

func (s *Server) handleUpdateSearchConfig(ctx context.Context, input *UpdateSearchConfigInput) (*SearchConfigOutput, error) {
	cfg, err := s.services.Core.UpdateSearchConfig(ctx, input.ConfigID, input.Body)
	if err != nil {
		return nil, err
	}
	return &SearchConfigOutput{Body: toSearchConfigResponse(cfg)}, nil
}

func (s *Server) handleDeleteSearchConfig(ctx context.Context, input *SearchConfigIDInput) (*struct{}, error) {
	if err := s.services.Core.DeleteSearchConfig(ctx, input.ConfigID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
