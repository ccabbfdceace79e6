package service

import (
	"context"
	"log/slog"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/mapping"
	"github.com/arkivoapp/solr-connector/internal/schema"
	"github.com/arkivoapp/solr-connector/internal/solr"
	"github.com/arkivoapp/solr-connector/internal/store"
)

// Structural index fields seeded into every document. The core's settings
// may override them (or blank them out to disable).
const (
	defaultResourceNameField = "resource_name_s"
	defaultIsPublicField     = "is_public_b"
	defaultSitesField        = "site_id_is"
	defaultOwnerField        = "owner_id_i"
)

// coreRuntime bundles the per-core machinery both the index and the query
// paths need: the transport client, a fresh schema resolver and the parsed
// field map. Runtimes are job scoped; the schema snapshot they hold must
// not outlive the operation.
type coreRuntime struct {
	core     *domain.SolrCore
	client   *solr.Client
	resolver *schema.Resolver
	fieldMap *mapping.FieldMap
}

func buildRuntime(ctx context.Context, st store.Store, coreID string, logger *slog.Logger) (*coreRuntime, error) {
	core, err := st.GetCore(ctx, coreID)
	if err != nil {
		return nil, translateStoreErr(err, "core")
	}
	rows, err := st.ListMappings(ctx, coreID)
	if err != nil {
		return nil, translateStoreErr(err, "mapping")
	}

	client := solr.NewClient(core.Connection, logger)
	return &coreRuntime{
		core:     core,
		client:   client,
		resolver: schema.NewResolver(client, logger),
		fieldMap: mapping.New(rows),
	}, nil
}

// setting reads one core setting with a default. An explicitly empty
// stored value wins over the default, which is how a structural field is
// disabled.
func (rt *coreRuntime) setting(key, fallback string) string {
	if v, ok := rt.core.Settings[key]; ok {
		return v
	}
	return fallback
}

func (rt *coreRuntime) resourceNameField() string {
	return rt.setting("resource_name_field", defaultResourceNameField)
}

func (rt *coreRuntime) isPublicField() string {
	return rt.setting("is_public_field", defaultIsPublicField)
}

func (rt *coreRuntime) sitesField() string {
	return rt.setting("sites_field", defaultSitesField)
}

func (rt *coreRuntime) ownerField() string {
	return rt.setting("owner_field", defaultOwnerField)
}
