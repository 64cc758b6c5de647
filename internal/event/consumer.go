// Package event applies catalog product events to the search index, keeping
// it in sync with upstream writes that bypass the HTTP API.
package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	"github.com/akyuz-dev/product-search-api/internal/service"
	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
	"github.com/akyuz-dev/product-search-api/pkg/kafka"
)

// Event types carried on the catalog product topic.
const (
	TypeProductCreated = "catalog.product.created"
	TypeProductUpdated = "catalog.product.updated"
	TypeProductDeleted = "catalog.product.deleted"
)

// ProductEventHandler translates catalog events into index writes.
type ProductEventHandler struct {
	products *service.ProductService
	logger   *slog.Logger
}

// NewProductEventHandler creates a handler that applies product events via
// the product service.
func NewProductEventHandler(products *service.ProductService, logger *slog.Logger) *ProductEventHandler {
	return &ProductEventHandler{
		products: products,
		logger:   logger,
	}
}

// Handle dispatches one event. Created and updated events upsert the
// document; deleted events remove it, treating an already-absent document as
// success. Unrecognized event types are logged and skipped.
func (h *ProductEventHandler) Handle(ctx context.Context, evt *kafka.Event) error {
	switch evt.EventType {
	case TypeProductCreated, TypeProductUpdated:
		return h.upsert(ctx, evt)
	case TypeProductDeleted:
		return h.delete(ctx, evt)
	default:
		h.logger.Warn("skipping unknown event type",
			"event_type", evt.EventType, "aggregate_id", evt.AggregateID)
		return nil
	}
}

func (h *ProductEventHandler) upsert(ctx context.Context, evt *kafka.Event) error {
	var product domain.Product
	if err := evt.UnmarshalData(&product); err != nil {
		return fmt.Errorf("decode product payload: %w", err)
	}
	if product.ID == "" {
		product.ID = evt.AggregateID
	}

	if _, err := h.products.Update(ctx, product.ID, &product); err != nil {
		return fmt.Errorf("apply %s for %s: %w", evt.EventType, product.ID, err)
	}
	return nil
}

func (h *ProductEventHandler) delete(ctx context.Context, evt *kafka.Event) error {
	err := h.products.Delete(ctx, evt.AggregateID)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Deletes are idempotent from the consumer's point of view.
		h.logger.Debug("delete event for absent product", "id", evt.AggregateID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("apply %s for %s: %w", evt.EventType, evt.AggregateID, err)
	}
	return nil
}
