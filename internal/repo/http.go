package repo

import (
	"context"
	"encoding/json/jsontext"
	json "encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arkivoapp/solr-connector/internal/domain"
)

// pageSize is the listing page size used during full reindex walks.
const pageSize = 100

// HTTPReader reads resources from the host platform's REST API. Payloads
// are JSON-LD flavored: "o:"-prefixed structural keys, property terms as
// top-level keys holding value arrays.
type HTTPReader struct {
	baseURL string
	key     string
	secret  string
	http    *http.Client
	logger  *slog.Logger
}

// NewHTTPReader builds a reader against the platform API root, e.g.
// "https://example.org/api".
func NewHTTPReader(baseURL, key, secret string, timeout time.Duration, logger *slog.Logger) *HTTPReader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPReader{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		secret:  secret,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Resource implements Reader. A missing resource is (nil, nil).
func (h *HTTPReader) Resource(ctx context.Context, name domain.ResourceName, id int64) (*domain.Resource, error) {
	var raw map[string]jsontext.Value
	status, err := h.get(ctx, fmt.Sprintf("/%s/%d", name, id), nil, &raw)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	return decodeResource(name, raw)
}

// Resources implements Reader, walking the paginated listing to the end.
func (h *HTTPReader) Resources(ctx context.Context, name domain.ResourceName) ([]*domain.Resource, error) {
	var out []*domain.Resource
	for page := 1; ; page++ {
		params := url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(pageSize)},
		}
		var raws []map[string]jsontext.Value
		status, err := h.get(ctx, "/"+string(name), params, &raws)
		if err != nil {
			return nil, err
		}
		if status == http.StatusNotFound || len(raws) == 0 {
			return out, nil
		}
		for _, raw := range raws {
			r, err := decodeResource(name, raw)
			if err != nil {
				h.logger.Warn("skipping undecodable resource", "resource", name, "error", err)
				continue
			}
			out = append(out, r)
		}
		if len(raws) < pageSize {
			return out, nil
		}
	}
}

func (h *HTTPReader) get(ctx context.Context, path string, params url.Values, v any) (int, error) {
	if params == nil {
		params = url.Values{}
	}
	if h.key != "" {
		params.Set("key_identity", h.key)
		params.Set("key_credential", h.secret)
	}
	u := h.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("repository request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("repository returned status %d for %s", resp.StatusCode, path)
	}
	if err := json.UnmarshalRead(resp.Body, v); err != nil {
		return resp.StatusCode, fmt.Errorf("decode repository response: %w", err)
	}
	return resp.StatusCode, nil
}

// idRef is the {"o:id": n} reference shape used for owners, item sets,
// templates and the like.
type idRef struct {
	ID    int64  `json:"o:id"`
	Term  string `json:"o:term"`
	Label string `json:"o:label"`
}

// wireValue is one property value as the platform serializes it.
type wireValue struct {
	Type       string                       `json:"type"`
	Value      string                       `json:"@value"`
	ID         string                       `json:"@id"`
	Label      string                       `json:"o:label"`
	Language   string                       `json:"@language"`
	IsPublic   *bool                        `json:"is_public"`
	ResourceID int64                        `json:"value_resource_id"`
	Annotation map[string][]jsontext.Value `json:"@annotation"`
}

func decodeResource(name domain.ResourceName, raw map[string]jsontext.Value) (*domain.Resource, error) {
	r := &domain.Resource{Name: name, IsPublic: true}

	if v, ok := raw["o:id"]; ok {
		if err := json.Unmarshal(v, &r.ID); err != nil {
			return nil, fmt.Errorf("o:id: %w", err)
		}
	}
	if v, ok := raw["o:is_public"]; ok {
		if err := json.Unmarshal(v, &r.IsPublic); err != nil {
			return nil, fmt.Errorf("o:is_public: %w", err)
		}
	}
	if v, ok := raw["o:owner"]; ok {
		var ref idRef
		if err := json.Unmarshal(v, &ref); err == nil {
			r.OwnerID = ref.ID
		}
	}
	if v, ok := raw["o:resource_class"]; ok {
		var ref idRef
		if err := json.Unmarshal(v, &ref); err == nil {
			r.ResourceClass = ref.Term
		}
	}
	if v, ok := raw["o:resource_template"]; ok {
		var ref idRef
		if err := json.Unmarshal(v, &ref); err == nil {
			r.ResourceTemplate = ref.Label
		}
	}
	if v, ok := raw["o:item_set"]; ok {
		var refs []idRef
		if err := json.Unmarshal(v, &refs); err == nil {
			for _, ref := range refs {
				r.ItemSetIDs = append(r.ItemSetIDs, ref.ID)
			}
		}
	}
	if v, ok := raw["o:item"]; ok {
		var ref idRef
		if err := json.Unmarshal(v, &ref); err == nil {
			r.ItemID = ref.ID
		}
	}
	if v, ok := raw["o:site"]; ok {
		var refs []idRef
		if err := json.Unmarshal(v, &refs); err == nil {
			for _, ref := range refs {
				r.SiteIDs = append(r.SiteIDs, ref.ID)
			}
		}
	}

	// Property terms are the remaining vocab-prefixed keys. Term order in
	// the payload is not significant; sort for determinism.
	terms := make([]string, 0, len(raw))
	for key := range raw {
		if isPropertyKey(key) {
			terms = append(terms, key)
		}
	}
	sort.Strings(terms)

	for _, term := range terms {
		var wires []wireValue
		if err := json.Unmarshal(raw[term], &wires); err != nil {
			continue
		}
		pv := domain.PropertyValues{Term: term}
		for _, w := range wires {
			pv.Values = append(pv.Values, decodeValue(w))
		}
		if len(pv.Values) > 0 {
			r.Values = append(r.Values, pv)
		}
	}
	return r, nil
}

// isPropertyKey reports whether a top-level key names a vocabulary
// property rather than a structural attribute.
func isPropertyKey(key string) bool {
	if strings.HasPrefix(key, "o:") || strings.HasPrefix(key, "@") {
		return false
	}
	prefix, local, ok := strings.Cut(key, ":")
	return ok && prefix != "" && local != ""
}

func decodeValue(w wireValue) domain.Value {
	v := domain.Value{
		Literal:    w.Value,
		URI:        w.ID,
		Label:      w.Label,
		Lang:       w.Language,
		ResourceID: w.ResourceID,
		IsPublic:   true,
	}
	if w.IsPublic != nil {
		v.IsPublic = *w.IsPublic
	}

	switch {
	case w.Type == "uri" || strings.HasPrefix(w.Type, "valuesuggest"):
		v.Type = domain.ValueURI
	case strings.HasPrefix(w.Type, "resource"):
		v.Type = domain.ValueResource
	default:
		v.Type = domain.ValueLiteral
	}

	// Annotations nest one more level of property/value pairs.
	if len(w.Annotation) > 0 {
		terms := make([]string, 0, len(w.Annotation))
		for term := range w.Annotation {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for _, term := range terms {
			set := domain.AnnotationSet{Property: term}
			for _, rawSub := range w.Annotation[term] {
				var sub wireValue
				if err := json.Unmarshal(rawSub, &sub); err != nil {
					continue
				}
				set.Values = append(set.Values, decodeValue(sub))
			}
			if len(set.Values) > 0 {
				v.Annotations = append(v.Annotations, set)
			}
		}
	}
	return v
}
