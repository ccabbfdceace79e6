package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/service"
)

func (s *Server) registerMappingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-mappings",
		Method:      http.MethodGet,
		Path:        "/api/v1/cores/{coreID}/mappings",
		Summary:     "List a core's field mappings",
		Tags:        []string{"Mappings"},
	}, s.handleListMappings)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-mapping",
		Method:        http.MethodPost,
		Path:          "/api/v1/cores/{coreID}/mappings",
		Summary:       "Create a field mapping",
		Tags:          []string{"Mappings"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateMapping)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-mapping",
		Method:      http.MethodGet,
		Path:        "/api/v1/mappings/{mappingID}",
		Summary:     "Get a field mapping",
		Tags:        []string{"Mappings"},
	}, s.handleGetMapping)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-mapping",
		Method:      http.MethodPut,
		Path:        "/api/v1/mappings/{mappingID}",
		Summary:     "Replace a field mapping",
		Description: "Renaming the target field rewrites references in the core's search configs.",
		Tags:        []string{"Mappings"},
	}, s.handleUpdateMapping)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-mapping",
		Method:      http.MethodDelete,
		Path:        "/api/v1/mappings/{mappingID}",
		Summary:     "Delete a field mapping",
		Description: "References to the field are scrubbed from search configs unless another mapping still populates it.",
		Tags:        []string{"Mappings"},
	}, s.handleDeleteMapping)
}

// === DTOs ===

// MappingResponse is the wire form of one field mapping.
type MappingResponse struct {
	ID           string              `json:"id"`
	CoreID       string              `json:"core_id"`
	ResourceName domain.ResourceName `json:"resource_name"`
	FieldName    string              `json:"field_name"`
	Alias        string              `json:"alias,omitempty"`
	Source       string              `json:"source"`
	Pool         domain.Pool         `json:"pool,omitempty"`
	Settings     map[string]string   `json:"settings,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func toMappingResponse(m *domain.FieldMapping) MappingResponse {
	return MappingResponse{
		ID:           m.ID,
		CoreID:       m.CoreID,
		ResourceName: m.ResourceName,
		FieldName:    m.FieldName,
		Alias:        m.Alias,
		Source:       m.Source,
		Pool:         m.Pool,
		Settings:     m.Settings,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ListMappingsOutput wraps the mapping list for Huma.
type ListMappingsOutput struct {
	Body []MappingResponse
}

// CreateMappingInput is the create-mapping request.
type CreateMappingInput struct {
	CoreID string `path:"coreID" doc:"Core ID"`
	Body   service.MappingInput
}

// MappingIDInput addresses one mapping by path.
type MappingIDInput struct {
	MappingID string `path:"mappingID" doc:"Mapping ID"`
}

// UpdateMappingInput is the replace-mapping request.
type UpdateMappingInput struct {
	MappingID string `path:"mappingID" doc:"Mapping ID"`
	Body      service.MappingInput
}

// MappingOutput wraps one mapping for Huma.
type MappingOutput struct {
	Body MappingResponse
}

// === Handlers ===

func (s *Server) handleListMappings(ctx context.Context, input *CoreIDInput) (*ListMappingsOutput, error) {
	mappings, err := s.services.Core.ListMappings(ctx, input.CoreID)
	if err != nil {
		return nil, err
	}

	out := &ListMappingsOutput{Body: make([]MappingResponse, 0, len(mappings))}
	for _, m := range mappings {
		out.Body = append(out.Body, toMappingResponse(m))
	}
	return out, nil
}

func (s *Server) handleCreateMapping(ctx context.Context, input *CreateMappingInput) (*MappingOutput, error) {
	m, err := s.services.Core.CreateMapping(ctx, input.CoreID, input.Body)
	if err != nil {
		return nil, err
	}
	return &MappingOutput{Body: toMappingResponse(m)}, nil
}

func (s *Server) handleGetMapping(ctx context.Context, input *MappingIDInput) (*MappingOutput, error) {
	m, err := s.services.Core.GetMapping(ctx, input.MappingID)
	if err != nil {
		return nil, err
	}
	return &MappingOutput{Body: toMappingResponse(m)}, nil
}

func (s *Server) handleUpdateMapping(ctx context.Context, input *UpdateMappingInput) (*MappingOutput, error) {
	m, err := s.services.Core.UpdateMapping(ctx, input.MappingID, input.Body)
	if err != nil {
		return nil, err
	}
	return &MappingOutput{Body: toMappingResponse(m)}, nil
}

func (s *Server) handleDeleteMapping(ctx context.Context, input *MappingIDInput) (*struct{}, error) {
	if err := s.services.Core.DeleteMapping(ctx, input.MappingID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
