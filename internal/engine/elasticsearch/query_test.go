package elasticsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akyuz-dev/product-search-api/internal/domain"
)

func TestBuildSearchBodyWithQuery(t *testing.T) {
	req := &domain.SearchRequest{Query: "wireless headphones"}
	body := buildSearchBody(req, 2, 20)

	assert.Equal(t, 20, body["from"])
	assert.Equal(t, 20, body["size"])
	assert.Equal(t, true, body["track_total_hits"])

	boolQuery := body["query"].(map[string]any)["bool"].(map[string]any)
	must := boolQuery["must"].([]any)
	require.Len(t, must, 1)

	multiMatch := must[0].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "wireless headphones", multiMatch["query"])
	assert.Equal(t, "best_fields", multiMatch["type"])
	assert.Equal(t, "AUTO", multiMatch["fuzziness"])
	assert.Equal(t, []string{"title^2.0", "brand^1.5", "category^1.2", "description"}, multiMatch["fields"])

	_, hasFilter := boolQuery["filter"]
	assert.False(t, hasFilter)
	_, hasAggs := body["aggs"]
	assert.False(t, hasAggs)
}

func TestBuildSearchBodyEmptyQueryMatchesAll(t *testing.T) {
	req := &domain.SearchRequest{}
	body := buildSearchBody(req, 1, 10)

	boolQuery := body["query"].(map[string]any)["bool"].(map[string]any)
	must := boolQuery["must"].([]any)
	require.Len(t, must, 1)

	_, ok := must[0].(map[string]any)["match_all"]
	assert.True(t, ok)
	assert.Equal(t, 0, body["from"])
}

func TestBuildSearchBodyWithFacets(t *testing.T) {
	req := &domain.SearchRequest{Query: "laptop", IncludeFacets: true}
	body := buildSearchBody(req, 1, 10)

	aggs, ok := body["aggs"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, aggs, "categories")
	assert.Contains(t, aggs, "brands")
	assert.Contains(t, aggs, "price_ranges")

	categories := aggs["categories"].(map[string]any)["terms"].(map[string]any)
	assert.Equal(t, "category", categories["field"])
	assert.Equal(t, facetTermsSize, categories["size"])

	ranges := aggs["price_ranges"].(map[string]any)["range"].(map[string]any)["ranges"].([]any)
	assert.Len(t, ranges, 5)

	first := ranges[0].(map[string]any)
	_, hasFrom := first["from"]
	assert.False(t, hasFrom)
	assert.Equal(t, 25.0, first["to"])

	last := ranges[4].(map[string]any)
	assert.Equal(t, 200.0, last["from"])
	_, hasTo := last["to"]
	assert.False(t, hasTo)
}

func TestBuildFilters(t *testing.T) {
	minPrice := 10.0
	maxPrice := 99.99

	tests := []struct {
		name string
		req  *domain.SearchRequest
		want int
	}{
		{"no filters", &domain.SearchRequest{}, 0},
		{"categories only", &domain.SearchRequest{Categories: []string{"Electronics"}}, 1},
		{"brands only", &domain.SearchRequest{Brands: []string{"Sony", "Bose"}}, 1},
		{"min price only", &domain.SearchRequest{MinPrice: &minPrice}, 1},
		{"all filters", &domain.SearchRequest{
			Categories: []string{"Electronics"},
			Brands:     []string{"Sony"},
			MinPrice:   &minPrice,
			MaxPrice:   &maxPrice,
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := buildFilters(tt.req)
			assert.Len(t, filters, tt.want)
		})
	}
}

func TestBuildFiltersHalfOpenPriceRange(t *testing.T) {
	maxPrice := 50.0
	filters := buildFilters(&domain.SearchRequest{MaxPrice: &maxPrice})
	require.Len(t, filters, 1)

	rangeFilter := filters[0].(map[string]any)["range"].(map[string]any)["price"].(map[string]any)
	assert.Equal(t, 50.0, rangeFilter["lte"])
	_, hasGte := rangeFilter["gte"]
	assert.False(t, hasGte)
}

func TestBuildSort(t *testing.T) {
	tests := []struct {
		sortBy string
		field  string
		order  string
	}{
		{domain.SortPriceAsc, "price", "asc"},
		{domain.SortPriceDesc, "price", "desc"},
		{domain.SortTitle, "title.keyword", "asc"},
		{domain.SortRelevance, "_score", "desc"},
		{"bogus", "_score", "desc"},
		{"", "_score", "desc"},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			clause := buildSort(tt.sortBy)
			require.Len(t, clause, 1)
			assert.Equal(t, tt.order, clause[0].(map[string]any)[tt.field])
		})
	}
}

func TestBuildSuggestBody(t *testing.T) {
	body := buildSuggestBody(&domain.SuggestionRequest{Prefix: "lap", Size: 10})

	assert.Equal(t, 0, body["size"])

	suggest := body["suggest"].(map[string]any)[suggestName].(map[string]any)
	assert.Equal(t, "lap", suggest["prefix"])

	completion := suggest["completion"].(map[string]any)
	assert.Equal(t, "suggest", completion["field"])
	assert.Equal(t, 10, completion["size"])
	_, hasContexts := completion["contexts"]
	assert.False(t, hasContexts)
}

func TestBuildSuggestBodyWithCategoryContext(t *testing.T) {
	body := buildSuggestBody(&domain.SuggestionRequest{Prefix: "lap", Size: 5, Category: "Electronics"})

	suggest := body["suggest"].(map[string]any)[suggestName].(map[string]any)
	contexts := suggest["completion"].(map[string]any)["contexts"].(map[string]any)
	assert.Equal(t, []string{"Electronics"}, contexts["category"])
}
