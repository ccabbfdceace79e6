// Package di provides dependency injection configuration for the connector.
package di

import (
	"github.com/samber/do/v2"

	"github.com/arkivoapp/solr-connector/internal/config"
	"github.com/arkivoapp/solr-connector/internal/di/providers"
	"github.com/arkivoapp/solr-connector/internal/logger"
	"github.com/arkivoapp/solr-connector/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database and host repository
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideRepoReader)

	// Business services
	do.Provide(injector, providers.ProvideCoreService)
	do.Provide(injector, providers.ProvideIndexService)
	do.Provide(injector, providers.ProvideQueryService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.RepoReaderHandle](injector)

	_ = do.MustInvoke[*service.CoreService](injector)
	_ = do.MustInvoke[*service.IndexService](injector)
	_ = do.MustInvoke[*service.QueryService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
