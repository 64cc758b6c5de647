package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
)

func seedEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()

	products := []domain.Product{
		{ID: "p1", Title: "Wireless Headphones", Brand: "Sony", Category: "Electronics", Price: 199.99},
		{ID: "p2", Title: "Bluetooth Speaker", Brand: "Bose", Category: "Electronics", Price: 89.50},
		{ID: "p3", Title: "Espresso Machine", Brand: "DeLonghi", Category: "Kitchen", Price: 349.00},
		{ID: "p4", Title: "Wireless Mouse", Brand: "Logitech", Category: "Electronics", Price: 24.99},
	}
	for i := range products {
		products[i].Suggest = domain.BuildSuggestion(&products[i])
	}

	items, err := e.BulkIndex(context.Background(), products)
	require.NoError(t, err)
	require.Len(t, items, 4)
	for _, item := range items {
		assert.False(t, item.Failed())
	}
	return e
}

func TestGetAndDelete(t *testing.T) {
	e := seedEngine(t)
	ctx := context.Background()

	p, err := e.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones", p.Title)

	_, err = e.Get(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, e.Delete(ctx, "p1"))
	assert.ErrorIs(t, e.Delete(ctx, "p1"), apperrors.ErrNotFound)
}

func TestIndexReplacesExisting(t *testing.T) {
	e := seedEngine(t)
	ctx := context.Background()

	updated := domain.Product{ID: "p1", Title: "Wired Headphones", Brand: "Sony", Category: "Electronics", Price: 49.99}
	require.NoError(t, e.Index(ctx, &updated))

	p, err := e.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Wired Headphones", p.Title)
	assert.Equal(t, 49.99, p.Price)
}

func TestSearchFreeText(t *testing.T) {
	e := seedEngine(t)

	result, err := e.Search(context.Background(), &domain.SearchRequest{
		Query: "wireless", Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Products, 2)
	for _, p := range result.Products {
		assert.Contains(t, p.Title, "Wireless")
	}
}

func TestSearchFilters(t *testing.T) {
	e := seedEngine(t)
	minPrice := 50.0
	maxPrice := 250.0

	result, err := e.Search(context.Background(), &domain.SearchRequest{
		Categories: []string{"Electronics"},
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		Page:       1,
		PageSize:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	result, err = e.Search(context.Background(), &domain.SearchRequest{
		Brands: []string{"Bose"}, Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "p2", result.Products[0].ID)
}

func TestSearchSortAndPaging(t *testing.T) {
	e := seedEngine(t)

	result, err := e.Search(context.Background(), &domain.SearchRequest{
		SortBy: domain.SortPriceAsc, Page: 1, PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Total)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "p4", result.Products[0].ID)
	assert.Equal(t, "p2", result.Products[1].ID)

	result, err = e.Search(context.Background(), &domain.SearchRequest{
		SortBy: domain.SortPriceAsc, Page: 2, PageSize: 2,
	})
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "p1", result.Products[0].ID)
	assert.Equal(t, "p3", result.Products[1].ID)
}

func TestSearchPageBeyondResults(t *testing.T) {
	e := seedEngine(t)

	result, err := e.Search(context.Background(), &domain.SearchRequest{
		Page: 5, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Total)
	assert.Empty(t, result.Products)
}

func TestSearchRelevanceRanksTitleMatchesFirst(t *testing.T) {
	e := New()
	ctx := context.Background()

	require.NoError(t, e.Index(ctx, &domain.Product{ID: "d1", Title: "Desk Lamp", Description: "A lamp with sony-style styling"}))
	require.NoError(t, e.Index(ctx, &domain.Product{ID: "d2", Title: "Sony Camera", Brand: "Sony"}))

	result, err := e.Search(ctx, &domain.SearchRequest{Query: "sony", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "d2", result.Products[0].ID)
}

func TestSearchFacets(t *testing.T) {
	e := seedEngine(t)

	result, err := e.Search(context.Background(), &domain.SearchRequest{
		Page: 1, PageSize: 10, IncludeFacets: true,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Facets)

	assert.Equal(t, []domain.FacetItem{
		{Value: "Electronics", Count: 3},
		{Value: "Kitchen", Count: 1},
	}, result.Facets["categories"])

	prices := result.Facets["price_ranges"]
	require.Len(t, prices, 5)
	assert.Equal(t, domain.FacetItem{Value: "0-25", Count: 1}, prices[0])
	assert.Equal(t, domain.FacetItem{Value: "50-100", Count: 1}, prices[2])
	assert.Equal(t, domain.FacetItem{Value: "100-200", Count: 1}, prices[3])
	assert.Equal(t, domain.FacetItem{Value: "200-unbounded", Count: 1}, prices[4])
}

func TestSearchFacetsOmittedWhenNotRequested(t *testing.T) {
	e := seedEngine(t)

	result, err := e.Search(context.Background(), &domain.SearchRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Nil(t, result.Facets)
}

func TestSuggest(t *testing.T) {
	e := seedEngine(t)

	suggestions, err := e.Suggest(context.Background(), &domain.SuggestionRequest{
		Prefix: "wire", Size: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Wireless Headphones", "Wireless Mouse"}, suggestions)
}

func TestSuggestDeduplicates(t *testing.T) {
	e := seedEngine(t)

	// Three electronics products share the same category input term.
	suggestions, err := e.Suggest(context.Background(), &domain.SuggestionRequest{
		Prefix: "elec", Size: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics"}, suggestions)
}

func TestSuggestSizeLimit(t *testing.T) {
	e := seedEngine(t)

	suggestions, err := e.Suggest(context.Background(), &domain.SuggestionRequest{
		Prefix: "wire", Size: 1,
	})
	require.NoError(t, err)
	assert.Len(t, suggestions, 1)
}

func TestSuggestCategoryContext(t *testing.T) {
	e := seedEngine(t)

	suggestions, err := e.Suggest(context.Background(), &domain.SuggestionRequest{
		Prefix: "e", Size: 10, Category: "Kitchen",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Espresso Machine"}, suggestions)
}
