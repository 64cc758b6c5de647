package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	"github.com/akyuz-dev/product-search-api/internal/engine"
)

// Paging and size limits applied before any request reaches the engine.
const (
	defaultPageSize    = 20
	maxPageSize        = 100
	defaultSuggestSize = 10
	maxSuggestSize     = 50
)

// SearchService normalizes search and suggestion requests and measures
// execution time.
type SearchService struct {
	engine engine.SearchEngine
	logger *slog.Logger
}

// NewSearchService creates a search service backed by the given engine.
func NewSearchService(eng engine.SearchEngine, logger *slog.Logger) *SearchService {
	return &SearchService{
		engine: eng,
		logger: logger,
	}
}

// Search normalizes paging and sort, runs the query, and wraps the result
// with the echoed paging parameters and measured wall-clock time.
func (s *SearchService) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	normalized := *req
	if normalized.Page < 1 {
		normalized.Page = 1
	}
	if normalized.PageSize < 1 {
		normalized.PageSize = defaultPageSize
	}
	if normalized.PageSize > maxPageSize {
		normalized.PageSize = maxPageSize
	}
	if !domain.IsValidSort(normalized.SortBy) {
		normalized.SortBy = domain.SortRelevance
	}

	start := time.Now()
	result, err := s.engine.Search(ctx, &normalized)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	s.logger.DebugContext(ctx, "search executed",
		"query", normalized.Query,
		"total", result.Total,
		"duration_ms", elapsed.Milliseconds(),
	)

	return &domain.SearchResponse{
		Products:        result.Products,
		TotalCount:      result.Total,
		Page:            normalized.Page,
		PageSize:        normalized.PageSize,
		Facets:          result.Facets,
		ExecutionTimeMs: elapsed.Milliseconds(),
	}, nil
}

// Suggest returns completion candidates for a prefix. A blank prefix yields
// an empty response without touching the engine.
func (s *SearchService) Suggest(ctx context.Context, req *domain.SuggestionRequest) (*domain.SuggestionResponse, error) {
	normalized := *req
	normalized.Prefix = strings.TrimSpace(normalized.Prefix)
	if normalized.Prefix == "" {
		return &domain.SuggestionResponse{Suggestions: []string{}}, nil
	}
	if normalized.Size < 1 {
		normalized.Size = defaultSuggestSize
	}
	if normalized.Size > maxSuggestSize {
		normalized.Size = maxSuggestSize
	}

	suggestions, err := s.engine.Suggest(ctx, &normalized)
	if err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return &domain.SuggestionResponse{Suggestions: suggestions}, nil
}
