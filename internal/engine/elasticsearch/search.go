package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
)

// esSearchResponse is the structure used to decode search responses.
type esSearchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source domain.Product `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
	Aggregations map[string]esAggregation `json:"aggregations"`
}

type esAggregation struct {
	Buckets []esBucket `json:"buckets"`
}

type esBucket struct {
	Key      any      `json:"key"`
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	DocCount int64    `json:"doc_count"`
}

// Search executes the query built from req and shapes hits and aggregation
// buckets into a SearchResult.
func (e *Engine) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResult, error) {
	body := buildSearchBody(req, req.Page, req.PageSize)

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: marshal query: %w", err)
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
		return nil, fmt.Errorf("elasticsearch search: %w", e.decodeError(res.Body, res.Status()))
	}

	var searchResp esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("elasticsearch search: decode response: %w", err)
	}

	result := &domain.SearchResult{
		Products: make([]domain.Product, 0, len(searchResp.Hits.Hits)),
		Total:    searchResp.Hits.Total.Value,
	}
	for _, hit := range searchResp.Hits.Hits {
		result.Products = append(result.Products, hit.Source)
	}

	if req.IncludeFacets && len(searchResp.Aggregations) > 0 {
		result.Facets = shapeFacets(searchResp.Aggregations)
	}

	return result, nil
}

// shapeFacets converts raw aggregation buckets into the facet map. Terms
// buckets keep their key as the value; price range buckets are labeled
// "{from}-{to}", with an absent lower bound rendered as 0 and an absent
// upper bound rendered as "unbounded".
func shapeFacets(aggs map[string]esAggregation) map[string][]domain.FacetItem {
	facets := make(map[string][]domain.FacetItem, len(aggs))
	for name, agg := range aggs {
		items := make([]domain.FacetItem, 0, len(agg.Buckets))
		for _, b := range agg.Buckets {
			items = append(items, domain.FacetItem{
				Value: bucketLabel(b),
				Count: b.DocCount,
			})
		}
		facets[name] = items
	}
	return facets
}

// bucketLabel derives the facet value for a single bucket. Range buckets
// are recognized by the presence of a bound.
func bucketLabel(b esBucket) string {
	if b.From != nil || b.To != nil {
		from := "0"
		if b.From != nil {
			from = formatBound(*b.From)
		}
		to := "unbounded"
		if b.To != nil {
			to = formatBound(*b.To)
		}
		return from + "-" + to
	}
	if s, ok := b.Key.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", b.Key)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
