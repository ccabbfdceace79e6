package api

import "github.com/arkivoapp/solr-connector/internal/service"

// Services groups the application services the HTTP layer dispatches to.
type Services struct {
	Core  *service.CoreService
	Index *service.IndexService
	Query *service.QueryService
}
