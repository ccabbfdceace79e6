package solr

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/arkivoapp/solr-connector/internal/domain"
)

// Client talks to one Solr core over HTTP. All calls are blocking and
// synchronous; there is no internal retry.
type Client struct {
	conn    domain.Connection
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a client for the core described by conn.
func NewClient(conn domain.Connection, logger *slog.Logger) *Client {
	transport := http.DefaultTransport
	if conn.BypassTLS {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //#nosec G402 -- explicit per-core opt-in
		}
	}
	return &Client{
		conn:    conn,
		baseURL: conn.BaseURL(),
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		logger: logger,
	}
}

// Endpoint returns the core's base URL with credentials redacted, for use
// in error messages.
func (c *Client) Endpoint() string {
	return c.conn.Redacted()
}

// Add submits documents through the JSON document endpoint without
// committing them.
func (c *Client) Add(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	return c.postJSON(ctx, "/update/json/docs", nil, docs, nil)
}

// Commit makes all pending updates visible.
func (c *Client) Commit(ctx context.Context) error {
	return c.postJSON(ctx, "/update", nil, map[string]any{"commit": map[string]any{}}, nil)
}

// DeleteByID removes a single document.
func (c *Client) DeleteByID(ctx context.Context, id string) error {
	body := map[string]any{"delete": map[string]any{"id": id}}
	return c.postJSON(ctx, "/update", nil, body, nil)
}

// DeleteByQuery removes every document matching the native query.
func (c *Client) DeleteByQuery(ctx context.Context, query string) error {
	body := map[string]any{"delete": map[string]any{"query": query}}
	return c.postJSON(ctx, "/update", nil, body, nil)
}

// Select executes a structured query.
func (c *Client) Select(ctx context.Context, req *Request) (*QueryResponse, error) {
	var resp QueryResponse
	if err := c.postJSON(ctx, "/select", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("solr select: %s (code %d)", resp.Error.Msg, resp.Error.Code)
	}
	return &resp, nil
}

// Suggest queries one or more suggester dictionaries for a partial term.
func (c *Client) Suggest(ctx context.Context, dictionaries []string, q string) (*SuggestResponse, error) {
	params := url.Values{}
	params.Set("suggest", "true")
	params.Set("suggest.q", q)
	for _, d := range dictionaries {
		params.Add("suggest.dictionary", d)
	}

	var resp SuggestResponse
	if err := c.getJSON(ctx, "/suggest", params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("solr suggest: %s (code %d)", resp.Error.Msg, resp.Error.Code)
	}
	return &resp, nil
}

// FetchSchema retrieves the remote schema document.
func (c *Client) FetchSchema(ctx context.Context) (*Schema, error) {
	var resp SchemaResponse
	if err := c.getJSON(ctx, "/schema", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("solr schema: %s (code %d)", resp.Error.Msg, resp.Error.Code)
	}
	return &resp.Schema, nil
}

// Ping checks that the core answers at all.
func (c *Client) Ping(ctx context.Context) error {
	var out map[string]any
	return c.getJSON(ctx, "/admin/ping", nil, &out)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, params url.Values, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.conn.User != "" {
		req.SetBasicAuth(c.conn.User, c.conn.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("solr request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Solr error bodies are JSON; decode best-effort for the message.
		var failure struct {
			Error *Error `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err := json.Unmarshal(raw, &failure); err == nil && failure.Error != nil {
			return fmt.Errorf("solr %s: %s (status %d)", req.URL.Path, failure.Error.Msg, resp.StatusCode)
		}
		return fmt.Errorf("solr %s: status %d", req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.UnmarshalRead(resp.Body, out); err != nil {
		return fmt.Errorf("decode solr response: %w", err)
	}
	return nil
}
