package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	"github.com/akyuz-dev/product-search-api/internal/embedding"
	"github.com/akyuz-dev/product-search-api/internal/engine"
	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
)

// ProductService owns product write and read semantics on top of the search
// engine: ID assignment, timestamps, suggestion recomputation, and optional
// embedding enrichment.
type ProductService struct {
	engine   engine.SearchEngine
	embedder embedding.Embedder
	logger   *slog.Logger
}

// NewProductService creates a product service. A nil embedder disables
// vector enrichment via embedding.Noop.
func NewProductService(eng engine.SearchEngine, embedder embedding.Embedder, logger *slog.Logger) *ProductService {
	if embedder == nil {
		embedder = embedding.Noop{}
	}
	return &ProductService{
		engine:   eng,
		embedder: embedder,
		logger:   logger,
	}
}

// Create indexes a new product. A missing ID gets a generated UUID; the
// creation timestamp and completion suggestion are always set server-side.
func (s *ProductService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := s.prepare(ctx, product); err != nil {
		return nil, err
	}
	if err := s.engine.Index(ctx, product); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "product created", "id", product.ID)
	return product, nil
}

// CreateBulk indexes multiple products in one batch. Products that fail
// validation are reported per-item and excluded from the batch write; write
// outcomes from the engine are merged back in request order.
func (s *ProductService) CreateBulk(ctx context.Context, products []domain.Product) ([]domain.BulkItem, error) {
	if len(products) == 0 {
		return nil, apperrors.InvalidInput("at least one product is required")
	}

	items := make([]domain.BulkItem, len(products))
	valid := make([]domain.Product, 0, len(products))
	validIdx := make([]int, 0, len(products))
	for i := range products {
		if err := s.prepare(ctx, &products[i]); err != nil {
			items[i] = domain.BulkItem{ID: products[i].ID, Error: err.Error()}
			continue
		}
		items[i] = domain.BulkItem{ID: products[i].ID}
		valid = append(valid, products[i])
		validIdx = append(validIdx, i)
	}

	if len(valid) > 0 {
		results, err := s.engine.BulkIndex(ctx, valid)
		if err != nil {
			return nil, err
		}
		for i, r := range results {
			items[validIdx[i]] = r
		}
	}

	s.logger.InfoContext(ctx, "bulk create finished", "requested", len(products), "submitted", len(valid))
	return items, nil
}

// Get fetches a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.engine.Get(ctx, id)
}

// Update fully replaces a product. The path ID wins over any ID in the body,
// and the suggestion is recomputed from the new field values.
func (s *ProductService) Update(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	product.ID = id
	if err := s.prepare(ctx, product); err != nil {
		return nil, err
	}
	if err := s.engine.Index(ctx, product); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "product updated", "id", product.ID)
	return product, nil
}

// Delete removes a product by ID.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.engine.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "product deleted", "id", id)
	return nil
}

// prepare normalizes a product before any write: required fields, ID and
// timestamp assignment, suggestion recomputation, optional embedding.
func (s *ProductService) prepare(ctx context.Context, product *domain.Product) error {
	if strings.TrimSpace(product.Title) == "" {
		return apperrors.InvalidInput("title is required")
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	product.Suggest = domain.BuildSuggestion(product)

	vec, err := s.embedder.Embed(ctx, embedding.EmbeddingText(product))
	if err != nil {
		// Vectors are an enrichment, not a write requirement.
		s.logger.WarnContext(ctx, "embedding failed, indexing without vector",
			"id", product.ID, "error", err)
	} else if len(vec) > 0 {
		product.Embedding = vec
	}

	return nil
}
