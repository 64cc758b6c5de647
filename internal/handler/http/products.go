package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	"github.com/akyuz-dev/product-search-api/internal/service"
	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
	"github.com/akyuz-dev/product-search-api/pkg/httputil"
	"github.com/akyuz-dev/product-search-api/pkg/validator"
)

// ProductHandler exposes product CRUD over HTTP.
type ProductHandler struct {
	products *service.ProductService
	logger   *slog.Logger
}

// NewProductHandler creates a product handler.
func NewProductHandler(products *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
	}
}

// productPayload is the write request body. Server-side fields (createdAt,
// suggest, embedding) are not accepted from callers.
type productPayload struct {
	ID          string            `json:"id"`
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Brand       string            `json:"brand"`
	Sku         string            `json:"sku"`
	Price       float64           `json:"price" validate:"gte=0"`
	Attributes  map[string]string `json:"attributes"`
	Tags        []string          `json:"tags"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func (p *productPayload) toDomain() *domain.Product {
	return &domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Brand:       p.Brand,
		Sku:         p.Sku,
		Price:       p.Price,
		Attributes:  p.Attributes,
		Tags:        p.Tags,
		CreatedAt:   p.CreatedAt,
	}
}

// bulkCreateResponse reports how many documents were indexed plus the
// per-document outcomes.
type bulkCreateResponse struct {
	Indexed int               `json:"indexed"`
	Items   []domain.BulkItem `json:"items"`
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}
	if err := validator.Validate(&payload); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	created, err := h.products.Create(r.Context(), payload.toDomain())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/products/%s", created.ID))
	httputil.WriteJSON(w, http.StatusCreated, created)
}

// CreateBulk handles POST /api/products/bulk.
func (h *ProductHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var payloads []productPayload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}
	if len(payloads) == 0 {
		httputil.WriteError(w, r, apperrors.InvalidInput("at least one product is required"), h.logger)
		return
	}

	products := make([]domain.Product, 0, len(payloads))
	for i := range payloads {
		products = append(products, *payloads[i].toDomain())
	}

	items, err := h.products.CreateBulk(r.Context(), products)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	indexed := 0
	for _, item := range items {
		if !item.Failed() {
			indexed++
		}
	}
	httputil.WriteJSON(w, http.StatusOK, bulkCreateResponse{Indexed: indexed, Items: items})
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, product)
}

// Update handles PUT /api/products/{id}. The body is a full replacement;
// the path ID wins over any ID in the body.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid JSON body"), h.logger)
		return
	}
	if err := validator.Validate(&payload); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	updated, err := h.products.Update(r.Context(), id, payload.toDomain())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.products.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
