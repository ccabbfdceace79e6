package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Connection holds the settings needed to reach one Solr core.
type Connection struct {
	Scheme      string `json:"scheme"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Path        string `json:"path"` // base path, usually "solr"
	Core        string `json:"core"` // collection/core name
	User        string `json:"user,omitempty"`
	Password    string `json:"password,omitempty"`
	BypassTLS   bool   `json:"bypass_tls,omitempty"`
}

// BaseURL returns the root URL of the core, without credentials.
func (c Connection) BaseURL() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "http"
	}
	port := c.Port
	if port == 0 {
		port = 8983
	}
	path := c.Path
	if path == "" {
		path = "solr"
	}
	return fmt.Sprintf("%s://%s:%d/%s/%s", scheme, c.Host, port, path, url.PathEscape(c.Core))
}

// Redacted returns the base URL suitable for error messages and logs.
// Credentials never appear in it.
func (c Connection) Redacted() string {
	return c.BaseURL()
}

// SuggesterConfig addresses the core's autocomplete subsystem. Fields may
// name one or more index fields the suggester dictionaries were built from;
// the catch-all field collapses them to the base dictionary.
type SuggesterConfig struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields,omitempty"`
}

// CatchAllField is Solr's default aggregate copy-field.
const CatchAllField = "_text_"

// SolrCore is one target index configuration. Mappings belong to exactly
// one core and are deleted with it.
type SolrCore struct {
	ID         string
	Name       string
	Connection Connection

	// Settings are free-form query-tuning options (minimum-match "mm",
	// tie-breaker "tie", ...) passed through to Solr.
	Settings map[string]string

	Suggester *SuggesterConfig

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchConfig is an opaque settings bag owned by the host platform's
// query-building UI. Settings may reference index field names as exact map
// keys (bare, "<field> asc", "<field> desc") at any nesting depth; mapping
// renames and deletions must rewrite them.
type SearchConfig struct {
	ID       string
	CoreID   string
	Name     string
	Settings map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}
