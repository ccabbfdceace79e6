package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/service"
)

func (s *Server) registerCoreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-cores",
		Method:      http.MethodGet,
		Path:        "/api/v1/cores",
		Summary:     "List cores",
		Tags:        []string{"Cores"},
	}, s.handleListCores)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-core",
		Method:        http.MethodPost,
		Path:          "/api/v1/cores",
		Summary:       "Register a core",
		Tags:          []string{"Cores"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateCore)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-core",
		Method:      http.MethodGet,
		Path:        "/api/v1/cores/{coreID}",
		Summary:     "Get a core",
		Tags:        []string{"Cores"},
	}, s.handleGetCore)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-core",
		Method:      http.MethodPatch,
		Path:        "/api/v1/cores/{coreID}",
		Summary:     "Update a core",
		Description: "Partial update; omitted fields keep their stored values.",
		Tags:        []string{"Cores"},
	}, s.handleUpdateCore)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-core",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cores/{coreID}",
		Summary:     "Delete a core and its mappings",
		Tags:        []string{"Cores"},
	}, s.handleDeleteCore)

	huma.Register(s.api, huma.Operation{
		OperationID: "ping-core",
		Method:      http.MethodGet,
		Path:        "/api/v1/cores/{coreID}/ping",
		Summary:     "Check engine reachability",
		Tags:        []string{"Cores"},
	}, s.handlePingCore)
}

// === DTOs ===

// CoreResponse is the wire form of one core configuration.
type CoreResponse struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	Connection domain.Connection       `json:"connection"`
	Settings   map[string]string       `json:"settings,omitempty"`
	Suggester  *domain.SuggesterConfig `json:"suggester,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

func toCoreResponse(c *domain.SolrCore) CoreResponse {
	resp := CoreResponse{
		ID:         c.ID,
		Name:       c.Name,
		Connection: c.Connection,
		Settings:   c.Settings,
		Suggester:  c.Suggester,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	// Credentials never leave the server.
	resp.Connection.Password = ""
	return resp
}

// ListCoresOutput wraps the core list for Huma.
type ListCoresOutput struct {
	Body []CoreResponse
}

// CreateCoreInput is the create-core request.
type CreateCoreInput struct {
	Body service.CreateCoreInput
}

// CoreOutput wraps one core for Huma.
type CoreOutput struct {
	Body CoreResponse
}

// CoreIDInput addresses one core by path.
type CoreIDInput struct {
	CoreID string `path:"coreID" doc:"Core ID"`
}

// UpdateCoreInput is the partial-update request.
type UpdateCoreInput struct {
	CoreID string `path:"coreID" doc:"Core ID"`
	Body   service.UpdateCoreInput
}

// PingOutput reports engine reachability.
type PingOutput struct {
	Body struct {
		Reachable bool `json:"reachable"`
	}
}

// === Handlers ===

func (s *Server) handleListCores(ctx context.Context, _ *struct{}) (*ListCoresOutput, error) {
	cores, err := s.services.Core.ListCores(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListCoresOutput{Body: make([]CoreResponse, 0, len(cores))}
	for _, c := range cores {
		out.Body = append(out.Body, toCoreResponse(c))
	}
	return out, nil
}

func (s *Server) handleCreateCore(ctx context.Context, input *CreateCoreInput) (*CoreOutput, error) {
	core, err := s.services.Core.CreateCore(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &CoreOutput{Body: toCoreResponse(core)}, nil
}

func (s *Server) handleGetCore(ctx context.Context, input *CoreIDInput) (*CoreOutput, error) {
	core, err := s.services.Core.GetCore(ctx, input.CoreID)
	if err != nil {
		return nil, err
	}
	return &CoreOutput{Body: toCoreResponse(core)}, nil
}

func (s *Server) handleUpdateCore(ctx context.Context, input *UpdateCoreInput) (*CoreOutput, error) {
	core, err := s.services.Core.UpdateCore(ctx, input.CoreID, input.Body)
	if err != nil {
		return nil, err
	}
	return &CoreOutput{Body: toCoreResponse(core)}, nil
}

func (s *Server) handleDeleteCore(ctx context.Context, input *CoreIDInput) (*struct{}, error) {
	if err := s.services.Core.DeleteCore(ctx, input.CoreID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handlePingCore(ctx context.Context, input *CoreIDInput) (*PingOutput, error) {
	out := &PingOutput{}
	if err := s.services.Query.Ping(ctx, input.CoreID); err != nil {
		s.logger.Warn("core ping failed", "core", input.CoreID, "error", err)
		return out, nil
	}
	out.Body.Reachable = true
	return out, nil
}
