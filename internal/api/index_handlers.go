package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/arkivoapp/solr-connector/internal/domain"
)

func (s *Server) registerIndexRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "index-resource",
		Method:      http.MethodPost,
		Path:        "/api/v1/cores/{coreID}/index/{resourceName}/{resourceID}",
		Summary:     "Index one resource",
		Description: "Fetches the resource from the host platform and upserts its document.",
		Tags:        []string{"Indexing"},
	}, s.handleIndexResource)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-resource",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cores/{coreID}/index/{resourceName}/{resourceID}",
		Summary:     "Remove one resource's document",
		Tags:        []string{"Indexing"},
	}, s.handleDeleteResource)

	huma.Register(s.api, huma.Operation{
		OperationID: "reindex-core",
		Method:      http.MethodPost,
		Path:        "/api/v1/cores/{coreID}/reindex",
		Summary:     "Clear and rebuild a core's index",
		Description: "Per-resource failures are counted in the report, not fatal.",
		Tags:        []string{"Indexing"},
	}, s.handleReindex)
}

// === DTOs ===

// ResourceRefInput addresses one host-platform resource within a core.
type ResourceRefInput struct {
	CoreID       string `path:"coreID" doc:"Core ID"`
	ResourceName string `path:"resourceName" doc:"Resource type" enum:"items,item_sets,media"`
	ResourceID   int64  `path:"resourceID" doc:"Resource ID" minimum:"1"`
}

// IndexStatusOutput acknowledges a single-resource operation.
type IndexStatusOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

// ReindexOutput reports the outcome of a full rebuild.
type ReindexOutput struct {
	Body struct {
		Total   int `json:"total"`
		Indexed int `json:"indexed"`
		Failed  int `json:"failed"`
	}
}

// === Handlers ===

func (s *Server) handleIndexResource(ctx context.Context, input *ResourceRefInput) (*IndexStatusOutput, error) {
	err := s.services.Index.IndexResource(ctx, input.CoreID, domain.ResourceName(input.ResourceName), input.ResourceID)
	if err != nil {
		return nil, err
	}
	out := &IndexStatusOutput{}
	out.Body.Status = "indexed"
	return out, nil
}

func (s *Server) handleDeleteResource(ctx context.Context, input *ResourceRefInput) (*IndexStatusOutput, error) {
	err := s.services.Index.DeleteResource(ctx, input.CoreID, domain.ResourceName(input.ResourceName), input.ResourceID)
	if err != nil {
		return nil, err
	}
	out := &IndexStatusOutput{}
	out.Body.Status = "deleted"
	return out, nil
}

func (s *Server) handleReindex(ctx context.Context, input *CoreIDInput) (*ReindexOutput, error) {
	report, err := s.services.Index.Reindex(ctx, input.CoreID)
	if err != nil {
		return nil, err
	}
	out := &ReindexOutput{}
	out.Body.Total = report.Total
	out.Body.Indexed = report.Indexed
	out.Body.Failed = report.Failed
	return out, nil
}
