package sqlite

import (
	"context"
	"database/sql"
	json "encoding/json/v2"
	"fmt"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/store"
)

// mappingColumns is the ordered list of columns selected in mapping
// queries. Must match the scan order in scanMapping.
const mappingColumns = `id, created_at, updated_at, core_id, resource_name,
	field_name, alias, source, pool, settings`

// scanMapping scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.FieldMapping.
func scanMapping(scanner interface{ Scan(dest ...any) error }) (*domain.FieldMapping, error) {
	var m domain.FieldMapping

	var (
		createdAt string
		updatedAt string
		alias     sql.NullString
		pool      sql.NullString
		settings  sql.NullString
	)

	err := scanner.Scan(
		&m.ID,
		&createdAt,
		&updatedAt,
		&m.CoreID,
		&m.ResourceName,
		&m.FieldName,
		&alias,
		&m.Source,
		&pool,
		&settings,
	)
	if err != nil {
		return nil, err
	}

	m.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	m.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if alias.Valid {
		m.Alias = alias.String
	}
	if pool.Valid && pool.String != "" {
		if err := json.Unmarshal([]byte(pool.String), &m.Pool); err != nil {
			return nil, fmt.Errorf("decode pool: %w", err)
		}
	}
	if settings.Valid && settings.String != "" {
		if err := json.Unmarshal([]byte(settings.String), &m.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	return &m, nil
}

func encodeMapping(m *domain.FieldMapping) (pool, settings sql.NullString, err error) {
	if !m.Pool.IsEmpty() {
		raw, err := json.Marshal(m.Pool)
		if err != nil {
			return sql.NullString{}, sql.NullString{}, fmt.Errorf("encode pool: %w", err)
		}
		pool = sql.NullString{String: string(raw), Valid: true}
	}
	if len(m.Settings) > 0 {
		raw, err := json.Marshal(m.Settings)
		if err != nil {
			return sql.NullString{}, sql.NullString{}, fmt.Errorf("encode settings: %w", err)
		}
		settings = sql.NullString{String: string(raw), Valid: true}
	}
	return pool, settings, nil
}

// CreateMapping inserts a new field mapping.
func (s *Store) CreateMapping(ctx context.Context, m *domain.FieldMapping) error {
	pool, settings, err := encodeMapping(m)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO field_mappings (
			id, created_at, updated_at, core_id, resource_name,
			field_name, alias, source, pool, settings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
		m.CoreID,
		string(m.ResourceName),
		m.FieldName,
		nullString(m.Alias),
		m.Source,
		pool,
		settings,
	)
	return err
}

// GetMapping retrieves a mapping by ID.
// Returns store.ErrNotFound if the mapping does not exist.
func (s *Store) GetMapping(ctx context.Context, id string) (*domain.FieldMapping, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+mappingColumns+` FROM field_mappings WHERE id = ?`, id)

	m, err := scanMapping(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListMappings returns all mappings of one core in creation order. The
// order matters: it is the declaration order the indexing pipeline walks.
func (s *Store) ListMappings(ctx context.Context, coreID string) ([]*domain.FieldMapping, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mappingColumns+` FROM field_mappings WHERE core_id = ? ORDER BY created_at ASC, id ASC`, coreID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []*domain.FieldMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mappings, nil
}

// UpdateMapping performs a full row update on an existing mapping.
// Returns store.ErrNotFound if the mapping does not exist.
func (s *Store) UpdateMapping(ctx context.Context, m *domain.FieldMapping) error {
	pool, settings, err := encodeMapping(m)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE field_mappings SET
			updated_at = ?,
			resource_name = ?,
			field_name = ?,
			alias = ?,
			source = ?,
			pool = ?,
			settings = ?
		WHERE id = ?`,
		formatTime(m.UpdatedAt),
		string(m.ResourceName),
		m.FieldName,
		nullString(m.Alias),
		m.Source,
		pool,
		settings,
		m.ID,
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

// DeleteMapping removes a mapping by ID.
// Returns store.ErrNotFound if the mapping does not exist.
func (s *Store) DeleteMapping(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM field_mappings WHERE id = ?`, id)
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

// DeleteMappingsForCore removes every mapping of one core.
func (s *Store) DeleteMappingsForCore(ctx context.Context, coreID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM field_mappings WHERE core_id = ?`, coreID)
	return err
}
