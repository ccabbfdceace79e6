package providers

import (
	"github.com/samber/do/v2"

	"github.com/arkivoapp/solr-connector/internal/logger"
	"github.com/arkivoapp/solr-connector/internal/service"
)

// ProvideCoreService provides the core/mapping/search-config management service.
func ProvideCoreService(i do.Injector) (*service.CoreService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCoreService(storeHandle.Store, log.Logger), nil
}

// ProvideIndexService provides the indexing service.
func ProvideIndexService(i do.Injector) (*service.IndexService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	repoHandle := do.MustInvoke[*RepoReaderHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewIndexService(storeHandle.Store, repoHandle.Reader, log.Logger), nil
}

// ProvideQueryService provides the query/suggest service.
func ProvideQueryService(i do.Injector) (*service.QueryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewQueryService(storeHandle.Store, log.Logger), nil
}
