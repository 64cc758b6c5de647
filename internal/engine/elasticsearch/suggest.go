package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
)

// suggestName keys the completion suggester inside the request and response.
const suggestName = "product_suggest"

// esSuggestResponse is the structure used to decode suggest responses.
type esSuggestResponse struct {
	Suggest map[string][]struct {
		Options []struct {
			Text string `json:"text"`
		} `json:"options"`
	} `json:"suggest"`
}

// Suggest returns completion candidates for the request prefix. Candidates
// are de-duplicated, keeping the first occurrence's position.
func (e *Engine) Suggest(ctx context.Context, req *domain.SuggestionRequest) ([]string, error) {
	body := buildSuggestBody(req)

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch suggest: marshal query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
	)
	if err != nil {
		return nil, apperrors.Unavailable("elasticsearch", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch suggest: %w", e.decodeError(res.Body, res.Status()))
	}

	var suggestResp esSuggestResponse
	if err := json.NewDecoder(res.Body).Decode(&suggestResp); err != nil {
		return nil, fmt.Errorf("elasticsearch suggest: decode response: %w", err)
	}

	var suggestions []string
	seen := make(map[string]struct{})
	for _, entry := range suggestResp.Suggest[suggestName] {
		for _, opt := range entry.Options {
			if _, ok := seen[opt.Text]; ok {
				continue
			}
			seen[opt.Text] = struct{}{}
			suggestions = append(suggestions, opt.Text)
		}
	}

	return suggestions, nil
}
