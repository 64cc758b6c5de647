package domain

// Sort options for search results.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitle     = "title"
)

// ValidSortOptions returns the list of valid sort options.
func ValidSortOptions() []string {
	return []string{SortRelevance, SortPriceAsc, SortPriceDesc, SortTitle}
}

// IsValidSort checks whether the given sort string is a valid sort option.
// Unknown values fall back to relevance rather than failing the request.
func IsValidSort(sort string) bool {
	for _, s := range ValidSortOptions() {
		if s == sort {
			return true
		}
	}
	return false
}

// SearchRequest holds all parameters for a search request.
type SearchRequest struct {
	Query         string   `json:"query"`
	Categories    []string `json:"categories,omitempty"`
	Brands        []string `json:"brands,omitempty"`
	MinPrice      *float64 `json:"minPrice,omitempty"`
	MaxPrice      *float64 `json:"maxPrice,omitempty"`
	SortBy        string   `json:"sortBy"`
	Page          int      `json:"page"`
	PageSize      int      `json:"pageSize"`
	IncludeFacets bool     `json:"includeFacets"`
}

// FacetItem is one (value, count) pair in a facet.
type FacetItem struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// SearchResult is the engine-level result: one page of documents, the total
// match count, and facets when they were requested and returned.
type SearchResult struct {
	Products []Product              `json:"products"`
	Total    int64                  `json:"total"`
	Facets   map[string][]FacetItem `json:"facets,omitempty"`
}

// SearchResponse is the API response shape: the result page plus echoed
// paging parameters and measured execution time.
type SearchResponse struct {
	Products        []Product              `json:"products"`
	TotalCount      int64                  `json:"totalCount"`
	Page            int                    `json:"page"`
	PageSize        int                    `json:"pageSize"`
	Facets          map[string][]FacetItem `json:"facets,omitempty"`
	ExecutionTimeMs int64                  `json:"executionTimeMs"`
}

// SuggestionRequest asks for completion candidates for a prefix.
// Category optionally scopes candidates to one category context.
type SuggestionRequest struct {
	Prefix   string `json:"prefix"`
	Size     int    `json:"size"`
	Category string `json:"category,omitempty"`
}

// SuggestionResponse carries de-duplicated, order-stable completions.
type SuggestionResponse struct {
	Suggestions []string `json:"suggestions"`
}

// BulkItem is the per-document outcome of a bulk write.
type BulkItem struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

// Failed reports whether this item's write failed.
func (b BulkItem) Failed() bool {
	return b.Error != ""
}
