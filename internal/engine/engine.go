package engine

import (
	"context"

	"github.com/akyuz-dev/product-search-api/internal/domain"
)

// SearchEngine defines the contract this service needs from a search backend.
// Implementations may use Elasticsearch or in-memory storage.
type SearchEngine interface {
	// Index adds or replaces a single product, waiting until the write is
	// visible to subsequent searches before returning.
	Index(ctx context.Context, product *domain.Product) error

	// BulkIndex adds or replaces multiple products in one batch write and
	// reports a per-document outcome. The returned error covers batch-level
	// failures only; individual document failures are in the items.
	BulkIndex(ctx context.Context, products []domain.Product) ([]domain.BulkItem, error)

	// Get fetches a product by ID. Returns errors.ErrNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Product, error)

	// Delete removes a product by ID. Returns errors.ErrNotFound when the
	// document did not exist, distinct from backend failures.
	Delete(ctx context.Context, id string) error

	// Search executes a translated search request and returns one page of
	// matches plus the total count and any requested facets.
	Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResult, error)

	// Suggest returns completion candidates for a prefix, de-duplicated in
	// first-seen order.
	Suggest(ctx context.Context, req *domain.SuggestionRequest) ([]string, error)
}
