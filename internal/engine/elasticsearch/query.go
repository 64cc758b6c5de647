package elasticsearch

import (
	"github.com/akyuz-dev/product-search-api/internal/domain"
)

// facetTermsSize caps the number of buckets per terms facet.
const facetTermsSize = 50

// priceBucketBounds are the fixed price range facet boundaries. A nil bound
// means unbounded on that side.
var priceBucketBounds = []struct {
	From *float64
	To   *float64
}{
	{nil, f(25)},
	{f(25), f(50)},
	{f(50), f(100)},
	{f(100), f(200)},
	{f(200), nil},
}

func f(v float64) *float64 { return &v }

// buildSearchBody translates a SearchRequest into the Elasticsearch query DSL.
// The free-text clause (or match_all) is always the scoring "must" clause;
// filters are non-scoring "filter" clauses added only when present.
func buildSearchBody(req *domain.SearchRequest, page, pageSize int) map[string]any {
	var mustClause any
	if req.Query != "" {
		// Title matches dominate, brand and category matter more than
		// description.
		mustClause = map[string]any{
			"multi_match": map[string]any{
				"query":     req.Query,
				"fields":    []string{"title^2.0", "brand^1.5", "category^1.2", "description"},
				"type":      "best_fields",
				"fuzziness": "AUTO",
			},
		}
	} else {
		mustClause = map[string]any{
			"match_all": map[string]any{},
		}
	}

	boolQuery := map[string]any{
		"must": []any{mustClause},
	}
	if filters := buildFilters(req); len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	body := map[string]any{
		"query": map[string]any{
			"bool": boolQuery,
		},
		"from":             (page - 1) * pageSize,
		"size":             pageSize,
		"track_total_hits": true,
	}

	if sortClause := buildSort(req.SortBy); sortClause != nil {
		body["sort"] = sortClause
	}

	if req.IncludeFacets {
		body["aggs"] = buildAggregations()
	}

	return body
}

// buildFilters constructs the non-scoring filter clauses. A price range with
// neither bound set is omitted entirely; a single bound produces a half-open
// range.
func buildFilters(req *domain.SearchRequest) []any {
	var filters []any

	if len(req.Categories) > 0 {
		filters = append(filters, map[string]any{
			"terms": map[string]any{
				"category": req.Categories,
			},
		})
	}

	if len(req.Brands) > 0 {
		filters = append(filters, map[string]any{
			"terms": map[string]any{
				"brand": req.Brands,
			},
		})
	}

	if req.MinPrice != nil || req.MaxPrice != nil {
		rangeFilter := map[string]any{}
		if req.MinPrice != nil {
			rangeFilter["gte"] = *req.MinPrice
		}
		if req.MaxPrice != nil {
			rangeFilter["lte"] = *req.MaxPrice
		}
		filters = append(filters, map[string]any{
			"range": map[string]any{
				"price": rangeFilter,
			},
		})
	}

	return filters
}

// buildSort maps the sort directive to a sort clause. Unrecognized values
// fall back to relevance ordering.
func buildSort(sortBy string) []any {
	switch sortBy {
	case domain.SortPriceAsc:
		return []any{
			map[string]any{"price": "asc"},
		}
	case domain.SortPriceDesc:
		return []any{
			map[string]any{"price": "desc"},
		}
	case domain.SortTitle:
		// Lexicographic sort needs the unanalyzed sibling field.
		return []any{
			map[string]any{"title.keyword": "asc"},
		}
	default:
		return []any{
			map[string]any{"_score": "desc"},
		}
	}
}

// buildAggregations constructs the three fixed facet aggregations.
func buildAggregations() map[string]any {
	ranges := make([]any, 0, len(priceBucketBounds))
	for _, b := range priceBucketBounds {
		r := map[string]any{}
		if b.From != nil {
			r["from"] = *b.From
		}
		if b.To != nil {
			r["to"] = *b.To
		}
		ranges = append(ranges, r)
	}

	return map[string]any{
		"categories": map[string]any{
			"terms": map[string]any{"field": "category", "size": facetTermsSize},
		},
		"brands": map[string]any{
			"terms": map[string]any{"field": "brand", "size": facetTermsSize},
		},
		"price_ranges": map[string]any{
			"range": map[string]any{
				"field":  "price",
				"ranges": ranges,
			},
		},
	}
}

// buildSuggestBody constructs a suggestion-only request: zero ranked
// documents, completion candidates for the prefix, optionally scoped to a
// category context.
func buildSuggestBody(req *domain.SuggestionRequest) map[string]any {
	completion := map[string]any{
		"field": "suggest",
		"size":  req.Size,
	}
	if req.Category != "" {
		completion["contexts"] = map[string]any{
			"category": []string{req.Category},
		}
	}

	return map[string]any{
		"size": 0,
		"suggest": map[string]any{
			suggestName: map[string]any{
				"prefix":     req.Prefix,
				"completion": completion,
			},
		},
	}
}
