package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	"github.com/akyuz-dev/product-search-api/internal/service"
	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
	"github.com/akyuz-dev/product-search-api/pkg/httputil"
)

// SearchHandler exposes search and suggestions over HTTP. Both endpoints
// accept POST with a JSON body and GET with query parameters.
type SearchHandler struct {
	search *service.SearchService
	logger *slog.Logger
}

// NewSearchHandler creates a search handler.
func NewSearchHandler(search *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		search: search,
		logger: logger,
	}
}

// Search handles POST /api/search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}
	h.runSearch(w, r, &req)
}

// SearchGet handles GET /api/search, mapping query parameters onto the same
// request shape the POST body uses.
func (h *SearchHandler) SearchGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := domain.SearchRequest{
		Query:      q.Get("q"),
		Categories: splitParam(q.Get("categories")),
		Brands:     splitParam(q.Get("brands")),
		SortBy:     q.Get("sortBy"),
	}

	var err error
	if req.MinPrice, err = parseFloatParam(q.Get("minPrice"), "minPrice"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if req.MaxPrice, err = parseFloatParam(q.Get("maxPrice"), "maxPrice"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if req.Page, err = parseIntParam(q.Get("page"), "page"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if req.PageSize, err = parseIntParam(q.Get("pageSize"), "pageSize"); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	req.IncludeFacets = q.Get("facets") == "true"

	h.runSearch(w, r, &req)
}

func (h *SearchHandler) runSearch(w http.ResponseWriter, r *http.Request, req *domain.SearchRequest) {
	resp, err := h.search.Search(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Suggest handles POST /api/search/suggestions.
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req domain.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}
	h.runSuggest(w, r, &req)
}

// SuggestGet handles GET /api/search/suggestions.
func (h *SearchHandler) SuggestGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := domain.SuggestionRequest{
		Prefix:   q.Get("prefix"),
		Category: q.Get("category"),
	}

	size, err := parseIntParam(q.Get("size"), "size")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	req.Size = size

	h.runSuggest(w, r, &req)
}

func (h *SearchHandler) runSuggest(w http.ResponseWriter, r *http.Request, req *domain.SuggestionRequest) {
	resp, err := h.search.Suggest(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// splitParam splits a comma-joined multi-value parameter, dropping empty
// segments.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}

func parseFloatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.InvalidInput(name + " must be a number")
	}
	return &v, nil
}

func parseIntParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput(name + " must be an integer")
	}
	return v, nil
}
