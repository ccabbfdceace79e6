package sqlite

import (
	"context"
	"database/sql"
	json "encoding/json/v2"
	"fmt"
	"strings"

	"github.com/arkivoapp/solr-connector/internal/domain"
	"github.com/arkivoapp/solr-connector/internal/store"
)

// coreColumns is the ordered list of columns selected in core queries.
// Must match the scan order in scanCore.
const coreColumns = `id, created_at, updated_at, name, connection, settings, suggester`

// scanCore scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.SolrCore.
func scanCore(scanner interface{ Scan(dest ...any) error }) (*domain.SolrCore, error) {
	var c domain.SolrCore

	var (
		createdAt  string
		updatedAt  string
		connection string
		settings   sql.NullString
		suggester  sql.NullString
	)

	err := scanner.Scan(&c.ID, &createdAt, &updatedAt, &c.Name, &connection, &settings, &suggester)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(connection), &c.Connection); err != nil {
		return nil, fmt.Errorf("decode connection: %w", err)
	}
	if settings.Valid && settings.String != "" {
		if err := json.Unmarshal([]byte(settings.String), &c.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	if suggester.Valid && suggester.String != "" {
		c.Suggester = &domain.SuggesterConfig{}
		if err := json.Unmarshal([]byte(suggester.String), c.Suggester); err != nil {
			return nil, fmt.Errorf("decode suggester: %w", err)
		}
	}
	return &c, nil
}

func encodeCore(c *domain.SolrCore) (connection string, settings, suggester sql.NullString, err error) {
	raw, err := json.Marshal(c.Connection)
	if err != nil {
		return "", sql.NullString{}, sql.NullString{}, fmt.Errorf("encode connection: %w", err)
	}
	connection = string(raw)

	if len(c.Settings) > 0 {
		raw, err := json.Marshal(c.Settings)
		if err != nil {
			return "", sql.NullString{}, sql.NullString{}, fmt.Errorf("encode settings: %w", err)
		}
		settings = sql.NullString{String: string(raw), Valid: true}
	}
	if c.Suggester != nil {
		raw, err := json.Marshal(c.Suggester)
		if err != nil {
			return "", sql.NullString{}, sql.NullString{}, fmt.Errorf("encode suggester: %w", err)
		}
		suggester = sql.NullString{String: string(raw), Valid: true}
	}
	return connection, settings, suggester, nil
}

// CreateCore inserts a new core configuration.
// Returns store.ErrAlreadyExists if the core ID or name already exists.
func (s *Store) CreateCore(ctx context.Context, c *domain.SolrCore) error {
	connection, settings, suggester, err := encodeCore(c)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cores (id, created_at, updated_at, name, connection, settings, suggester)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
		c.Name,
		connection,
		settings,
		suggester,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetCore retrieves a core by ID.
// Returns store.ErrNotFound if the core does not exist.
func (s *Store) GetCore(ctx context.Context, id string) (*domain.SolrCore, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+coreColumns+` FROM cores WHERE id = ?`, id)

	c, err := scanCore(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetCoreByName retrieves a core by its unique name.
// Returns store.ErrNotFound if the core does not exist.
func (s *Store) GetCoreByName(ctx context.Context, name string) (*domain.SolrCore, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+coreColumns+` FROM cores WHERE name = ?`, name)

	c, err := scanCore(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCores returns all cores sorted by name.
func (s *Store) ListCores(ctx context.Context) ([]*domain.SolrCore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+coreColumns+` FROM cores ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cores []*domain.SolrCore
	for rows.Next() {
		c, err := scanCore(rows)
		if err != nil {
			return nil, err
		}
		cores = append(cores, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cores, nil
}

// UpdateCore performs a full row update on an existing core.
// Returns store.ErrNotFound if the core does not exist.
func (s *Store) UpdateCore(ctx context.Context, c *domain.SolrCore) error {
	connection, settings, suggester, err := encodeCore(c)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE cores SET
			updated_at = ?,
			name = ?,
			connection = ?,
			settings = ?,
			suggester = ?
		WHERE id = ?`,
		formatTime(c.UpdatedAt),
		c.Name,
		connection,
		settings,
		suggester,
		c.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
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

// DeleteCore removes a core. Mappings and search configs cascade via
// foreign keys. Returns store.ErrNotFound if the core does not exist.
func (s *Store) DeleteCore(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM cores WHERE id = ?`, id)
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
