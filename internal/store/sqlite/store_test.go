package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/store"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testCore(id, name string) *domain.SolrCore {
	now := time.Now().UTC()
	return &domain.SolrCore{
		ID:   id,
		Name: name,
		Connection: domain.Connection{
			Host: "solr.local",
			Core: "archive",
		},
		Settings:  map[string]string{"mm": "75%"},
		Suggester: &domain.SuggesterConfig{Name: "suggest", Fields: []string{"title_txt"}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCoreCRUD(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	core := testCore("core-1", "archive")
	require.NoError(t, s.CreateCore(ctx, core))

	got, err := s.GetCore(ctx, "core-1")
	require.NoError(t, err)
	assert.Equal(t, "archive", got.Name)
	assert.Equal(t, "solr.local", got.Connection.Host)
	assert.Equal(t, map[string]string{"mm": "75%"}, got.Settings)
	require.NotNil(t, got.Suggester)
	assert.Equal(t, "suggest", got.Suggester.Name)
	assert.WithinDuration(t, core.CreatedAt, got.CreatedAt, time.Millisecond)

	byName, err := s.GetCoreByName(ctx, "archive")
	require.NoError(t, err)
	assert.Equal(t, "core-1", byName.ID)

	got.Name = "renamed"
	got.Suggester = nil
	got.UpdatedAt = time.Now().UTC()
	require.NoError(t, s.UpdateCore(ctx, got))

	updated, err := s.GetCore(ctx, "core-1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Nil(t, updated.Suggester)

	require.NoError(t, s.DeleteCore(ctx, "core-1"))
	_, err = s.GetCore(ctx, "core-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateCore_DuplicateName(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateCore(ctx, testCore("core-1", "archive")))
	err := s.CreateCore(ctx, testCore("core-2", "archive"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestListCores_SortedByName(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateCore(ctx, testCore("core-1", "zulu")))
	require.NoError(t, s.CreateCore(ctx, testCore("core-2", "alpha")))

	cores, err := s.ListCores(ctx)
	require.NoError(t, err)
	require.Len(t, cores, 2)
	assert.Equal(t, "alpha", cores[0].Name)
	assert.Equal(t, "zulu", cores[1].Name)
}

func TestUpdateCore_Missing(t *testing.T) {
	s := testStore(t)
	err := s.UpdateCore(context.Background(), testCore("ghost", "ghost"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testMapping(id, coreID, field string, created time.Time) *domain.FieldMapping {
	return &domain.FieldMapping{
		ID:           id,
		CoreID:       coreID,
		ResourceName: domain.NameItems,
		FieldName:    field,
		Source:       "dcterms:title",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestMappingCRUD(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateCore(ctx, testCore("core-1", "archive")))

	now := time.Now().UTC()
	m := testMapping("map-1", "core-1", "dcterms_title_t", now)
	m.Alias = "title"
	m.Pool = domain.Pool{DataTypes: []string{"literal"}}
	m.Settings = map[string]string{"formatter": "text"}
	require.NoError(t, s.CreateMapping(ctx, m))

	got, err := s.GetMapping(ctx, "map-1")
	require.NoError(t, err)
	assert.Equal(t, "core-1", got.CoreID)
	assert.Equal(t, domain.NameItems, got.ResourceName)
	assert.Equal(t, "title", got.Alias)
	assert.Equal(t, []string{"literal"}, got.Pool.DataTypes)
	assert.Equal(t, "text", got.Settings["formatter"])

	got.FieldName = "dcterms_title_s"
	got.Alias = ""
	got.Pool = domain.Pool{}
	require.NoError(t, s.UpdateMapping(ctx, got))

	updated, err := s.GetMapping(ctx, "map-1")
	require.NoError(t, err)
	assert.Equal(t, "dcterms_title_s", updated.FieldName)
	assert.Empty(t, updated.Alias)
	assert.True(t, updated.Pool.IsEmpty())

	require.NoError(t, s.DeleteMapping(ctx, "map-1"))
	_, err = s.GetMapping(ctx, "map-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListMappings_CreationOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateCore(ctx, testCore("core-1", "archive")))

	base := time.Now().UTC()
	require.NoError(t, s.CreateMapping(ctx, testMapping("map-b", "core-1", "second_t", base.Add(time.Second))))
	require.NoError(t, s.CreateMapping(ctx, testMapping("map-a", "core-1", "first_t", base)))

	mappings, err := s.ListMappings(ctx, "core-1")
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, "first_t", mappings[0].FieldName)
	assert.Equal(t, "second_t", mappings[1].FieldName)
}

func TestDeleteCore_CascadesMappingsAndConfigs(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateCore(ctx, testCore("core-1", "archive")))

	now := time.Now().UTC()
	require.NoError(t, s.CreateMapping(ctx, testMapping("map-1", "core-1", "title_t", now)))
	require.NoError(t, s.CreateSearchConfig(ctx, &domain.SearchConfig{
		ID: "cfg-1", CoreID: "core-1", Name: "main", CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, s.DeleteCore(ctx, "core-1"))

	mappings, err := s.ListMappings(ctx, "core-1")
	require.NoError(t, err)
	assert.Empty(t, mappings)

	configs, err := s.ListSearchConfigs(ctx, "core-1")
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func TestSearchConfigCRUD(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateCore(ctx, testCore("core-1", "archive")))

	now := time.Now().UTC()
	cfg := &domain.SearchConfig{
		ID:     "cfg-1",
		CoreID: "core-1",
		Name:   "main",
		Settings: map[string]any{
			"facets": map[string]any{"dcterms_subject_ss": map[string]any{"limit": float64(10)}},
			"sort":   []any{"dcterms_title_s asc"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateSearchConfig(ctx, cfg))

	got, err := s.GetSearchConfig(ctx, "cfg-1")
	require.NoError(t, err)
	assert.Equal(t, "main", got.Name)
	assert.Equal(t, cfg.Settings, got.Settings)

	got.Name = "advanced"
	require.NoError(t, s.UpdateSearchConfig(ctx, got))

	configs, err := s.ListSearchConfigs(ctx, "core-1")
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "advanced", configs[0].Name)

	require.NoError(t, s.DeleteSearchConfig(ctx, "cfg-1"))
	assert.ErrorIs(t, s.DeleteSearchConfig(ctx, "cfg-1"), store.ErrNotFound)
}
