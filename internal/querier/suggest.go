package querier

import (
	"context"
	"sort"
	"strings"

	"github.com/arkivoapp/solr-connector/internal/domain"
)

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Value  string `json:"value"`
	Weight int64  `json:"weight,omitempty"`
}

// SuggestResponse carries autocomplete results or a structured failure.
type SuggestResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// QuerySuggestions resolves the effective suggester dictionaries and
// queries them. An empty query string succeeds immediately without
// touching the engine; a missing suggester configuration and transport
// failures both come back as failed responses.
func (q *Querier) QuerySuggestions(ctx context.Context, text string) *SuggestResponse {
	text = strings.TrimSpace(text)
	if text == "" {
		return &SuggestResponse{Success: true}
	}

	dictionaries := Dictionaries(q.opts.Suggester)
	if len(dictionaries) == 0 {
		return &SuggestResponse{Success: false, Message: "suggester not configured"}
	}

	native, err := q.engine.Suggest(ctx, dictionaries, text)
	if err != nil {
		q.logger.Error("suggestion lookup failed", "error", err)
		return &SuggestResponse{Success: false, Message: "error"}
	}

	// Merge across dictionaries, keeping the highest weight per term.
	weights := map[string]int64{}
	for _, dict := range dictionaries {
		block, ok := native.Suggest[dict][text]
		if !ok {
			continue
		}
		for _, s := range block.Suggestions {
			if w, seen := weights[s.Term]; !seen || s.Weight > w {
				weights[s.Term] = s.Weight
			}
		}
	}

	resp := &SuggestResponse{Success: true}
	for term, weight := range weights {
		resp.Suggestions = append(resp.Suggestions, Suggestion{Value: term, Weight: weight})
	}
	sort.Slice(resp.Suggestions, func(i, j int) bool {
		if resp.Suggestions[i].Weight != resp.Suggestions[j].Weight {
			return resp.Suggestions[i].Weight > resp.Suggestions[j].Weight
		}
		return resp.Suggestions[i].Value < resp.Suggestions[j].Value
	})
	return resp
}

// Dictionaries computes the effective suggester dictionary names from the
// configuration:
//   - no configuration: none
//   - fields contain the catch-all field: the base name alone, other
//     fields ignored
//   - several specific fields: one derived "base_field" name each
//   - one field or none: the base name alone
func Dictionaries(cfg *domain.SuggesterConfig) []string {
	if cfg == nil || cfg.Name == "" {
		return nil
	}
	for _, f := range cfg.Fields {
		if f == domain.CatchAllField {
			return []string{cfg.Name}
		}
	}
	if len(cfg.Fields) > 1 {
		names := make([]string, len(cfg.Fields))
		for i, f := range cfg.Fields {
			names[i] = cfg.Name + "_" + f
		}
		return names
	}
	return []string{cfg.Name}
}
