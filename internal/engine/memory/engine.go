// Package memory provides an in-memory SearchEngine for local development
// and tests. It mirrors the Elasticsearch engine's observable behavior:
// filtering, sorting, paging, facets, and prefix suggestions, minus scoring
// subtleties like fuzziness and field boosts.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	"github.com/akyuz-dev/product-search-api/internal/engine"
	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
)

// Engine stores products in a map guarded by a read-write mutex.
type Engine struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

var _ engine.SearchEngine = (*Engine)(nil)

// New creates an empty in-memory engine.
func New() *Engine {
	return &Engine{
		products: make(map[string]domain.Product),
	}
}

// Index adds or replaces a single product.
func (e *Engine) Index(_ context.Context, product *domain.Product) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.products[product.ID] = *product
	return nil
}

// BulkIndex adds or replaces multiple products. In-memory writes cannot fail
// per document, so every item reports success.
func (e *Engine) BulkIndex(_ context.Context, products []domain.Product) ([]domain.BulkItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]domain.BulkItem, 0, len(products))
	for i := range products {
		e.products[products[i].ID] = products[i]
		items = append(items, domain.BulkItem{ID: products[i].ID})
	}
	return items, nil
}

// Get fetches a product by ID.
func (e *Engine) Get(_ context.Context, id string) (*domain.Product, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	p, ok := e.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &p, nil
}

// Delete removes a product by ID.
func (e *Engine) Delete(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.products[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	delete(e.products, id)
	return nil
}

// Search filters, sorts, and pages the stored products. Facets are computed
// over the full filtered set, not just the returned page.
func (e *Engine) Search(_ context.Context, req *domain.SearchRequest) (*domain.SearchResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var matched []domain.Product
	for _, p := range e.products {
		if matches(&p, req) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, req.SortBy, req.Query)

	result := &domain.SearchResult{
		Total: int64(len(matched)),
	}
	if req.IncludeFacets {
		result.Facets = computeFacets(matched)
	}

	start := (req.Page - 1) * req.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + req.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	result.Products = append([]domain.Product{}, matched[start:end]...)

	return result, nil
}

// Suggest returns completion inputs whose prefix matches, case-insensitively,
// de-duplicated in first-seen order. A category scopes candidates to
// products whose suggestion context contains it.
func (e *Engine) Suggest(_ context.Context, req *domain.SuggestionRequest) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	prefix := strings.ToLower(req.Prefix)

	ids := make([]string, 0, len(e.products))
	for id := range e.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var suggestions []string
	seen := make(map[string]struct{})
	for _, id := range ids {
		p := e.products[id]
		if req.Category != "" && !hasContext(p.Suggest, "category", req.Category) {
			continue
		}
		for _, input := range p.Suggest.Input {
			if !strings.HasPrefix(strings.ToLower(input), prefix) {
				continue
			}
			if _, ok := seen[input]; ok {
				continue
			}
			seen[input] = struct{}{}
			suggestions = append(suggestions, input)
			if len(suggestions) == req.Size {
				return suggestions, nil
			}
		}
	}
	return suggestions, nil
}

func hasContext(s domain.Suggestion, key, value string) bool {
	for _, v := range s.Contexts[key] {
		if v == value {
			return true
		}
	}
	return false
}

// matches applies the free-text match and all filters. The text match is a
// case-insensitive substring check over the boosted search fields.
func matches(p *domain.Product, req *domain.SearchRequest) bool {
	if req.Query != "" {
		q := strings.ToLower(req.Query)
		hit := false
		for _, field := range []string{p.Title, p.Brand, p.Category, p.Description} {
			if strings.Contains(strings.ToLower(field), q) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if len(req.Categories) > 0 && !contains(req.Categories, p.Category) {
		return false
	}
	if len(req.Brands) > 0 && !contains(req.Brands, p.Brand) {
		return false
	}
	if req.MinPrice != nil && p.Price < *req.MinPrice {
		return false
	}
	if req.MaxPrice != nil && p.Price > *req.MaxPrice {
		return false
	}
	return true
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// sortProducts orders matched products. Relevance here ranks title matches
// before other-field matches, then falls back to title order so results are
// deterministic.
func sortProducts(products []domain.Product, sortBy, query string) {
	switch sortBy {
	case domain.SortPriceAsc:
		sort.Slice(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case domain.SortPriceDesc:
		sort.Slice(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case domain.SortTitle:
		sort.Slice(products, func(i, j int) bool {
			return products[i].Title < products[j].Title
		})
	default:
		q := strings.ToLower(query)
		sort.Slice(products, func(i, j int) bool {
			if q != "" {
				iTitle := strings.Contains(strings.ToLower(products[i].Title), q)
				jTitle := strings.Contains(strings.ToLower(products[j].Title), q)
				if iTitle != jTitle {
					return iTitle
				}
			}
			return products[i].Title < products[j].Title
		})
	}
}

// computeFacets builds the same three facets the Elasticsearch engine
// returns: category terms, brand terms, and fixed price range buckets.
func computeFacets(products []domain.Product) map[string][]domain.FacetItem {
	categories := make(map[string]int64)
	brands := make(map[string]int64)
	for i := range products {
		if products[i].Category != "" {
			categories[products[i].Category]++
		}
		if products[i].Brand != "" {
			brands[products[i].Brand]++
		}
	}

	priceBounds := []struct {
		From *float64
		To   *float64
	}{
		{nil, bound(25)},
		{bound(25), bound(50)},
		{bound(50), bound(100)},
		{bound(100), bound(200)},
		{bound(200), nil},
	}

	priceItems := make([]domain.FacetItem, 0, len(priceBounds))
	for _, b := range priceBounds {
		var count int64
		for i := range products {
			if b.From != nil && products[i].Price < *b.From {
				continue
			}
			if b.To != nil && products[i].Price >= *b.To {
				continue
			}
			count++
		}
		priceItems = append(priceItems, domain.FacetItem{
			Value: rangeLabel(b.From, b.To),
			Count: count,
		})
	}

	return map[string][]domain.FacetItem{
		"categories":   termItems(categories),
		"brands":       termItems(brands),
		"price_ranges": priceItems,
	}
}

func bound(v float64) *float64 { return &v }

func rangeLabel(from, to *float64) string {
	fromLabel := "0"
	if from != nil {
		fromLabel = strconv.FormatFloat(*from, 'f', -1, 64)
	}
	toLabel := "unbounded"
	if to != nil {
		toLabel = strconv.FormatFloat(*to, 'f', -1, 64)
	}
	return fromLabel + "-" + toLabel
}

// termItems converts a count map to facet items ordered by descending count,
// ties broken by value, matching terms aggregation ordering.
func termItems(counts map[string]int64) []domain.FacetItem {
	items := make([]domain.FacetItem, 0, len(counts))
	for value, count := range counts {
		items = append(items, domain.FacetItem{Value: value, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Value < items[j].Value
	})
	return items
}
