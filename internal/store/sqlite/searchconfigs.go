package sqlite

import (
	"context"
	"database/sql"
	json "encoding/json/v2"
	"fmt"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/store"
)

// searchConfigColumns is the ordered list of columns selected in search
// config queries. Must match the scan order in scanSearchConfig.
const searchConfigColumns = `id, created_at, updated_at, core_id, name, settings`

// scanSearchConfig scans a sql.Row (or sql.Rows via its Scan method) into
// a domain.SearchConfig.
func scanSearchConfig(scanner interface{ Scan(dest ...any) error }) (*domain.SearchConfig, error) {
	var cfg domain.SearchConfig

	var (
		createdAt string
		updatedAt string
		settings  sql.NullString
	)

	err := scanner.Scan(&cfg.ID, &createdAt, &updatedAt, &cfg.CoreID, &cfg.Name, &settings)
	if err != nil {
		return nil, err
	}

	cfg.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	cfg.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if settings.Valid && settings.String != "" {
		if err := json.Unmarshal([]byte(settings.String), &cfg.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	return &cfg, nil
}

func encodeSearchConfigSettings(cfg *domain.SearchConfig) (sql.NullString, error) {
	if len(cfg.Settings) == 0 {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(cfg.Settings)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode settings: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// CreateSearchConfig inserts a new search config.
func (s *Store) CreateSearchConfig(ctx context.Context, cfg *domain.SearchConfig) error {
	settings, err := encodeSearchConfigSettings(cfg)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO search_configs (id, created_at, updated_at, core_id, name, settings)
		VALUES (?, ?, ?, ?, ?, ?)`,
		cfg.ID,
		formatTime(cfg.CreatedAt),
		formatTime(cfg.UpdatedAt),
		cfg.CoreID,
		cfg.Name,
		settings,
	)
	return err
}

// GetSearchConfig retrieves a search config by ID.
// Returns store.ErrNotFound if the config does not exist.
func (s *Store) GetSearchConfig(ctx context.Context, id string) (*domain.SearchConfig, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+searchConfigColumns+` FROM search_configs WHERE id = ?`, id)

	cfg, err := scanSearchConfig(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ListSearchConfigs returns all search configs of one core sorted by name.
func (s *Store) ListSearchConfigs(ctx context.Context, coreID string) ([]*domain.SearchConfig, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+searchConfigColumns+` FROM search_configs WHERE core_id = ? ORDER BY name ASC`, coreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*domain.SearchConfig
	for rows.Next() {
		cfg, err := scanSearchConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return configs, nil
}

// UpdateSearchConfig performs a full row update on an existing config.
// Returns store.ErrNotFound if the config does not exist.
func (s *Store) UpdateSearchConfig(ctx context.Context, cfg *domain.SearchConfig) error {
	settings, err := encodeSearchConfigSettings(cfg)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE search_configs SET
			updated_at = ?,
			name = ?,
			settings = ?
		WHERE id = ?`,
		formatTime(cfg.UpdatedAt),
		cfg.Name,
		settings,
		cfg.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteSearchConfig removes a search config by ID.
// Returns store.ErrNotFound if the config does not exist.
func (s *Store) DeleteSearchConfig(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM search_configs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
