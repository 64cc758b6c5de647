package domain

import (
	"strings"
	"time"
)

// EmbeddingDimensions is the fixed length of the reserved product embedding
// vector. It must match the dense_vector dims in the index mapping.
const EmbeddingDimensions = 768

// Product represents a product document in the search index. The JSON tags
// are both the API contract and the index field names.
type Product struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Brand       string            `json:"brand"`
	Sku         string            `json:"sku"`
	Price       float64           `json:"price"`
	Attributes  map[string]string `json:"attributes"`
	Tags        []string          `json:"tags"`
	CreatedAt   time.Time         `json:"createdAt"`

	// Suggest is derived from title/brand/category before every write and
	// is never taken from the caller.
	Suggest Suggestion `json:"suggest"`

	// Embedding is reserved for vector search. Populated only when an
	// embedder is configured; queries do not use it yet.
	Embedding []float32 `json:"embedding,omitempty"`
}

// Suggestion is the completion payload backing prefix autocomplete.
// Input terms feed the completion field; Contexts scope candidates by
// category.
type Suggestion struct {
	Input    []string            `json:"input"`
	Contexts map[string][]string `json:"contexts,omitempty"`
}

// BuildSuggestion derives the completion payload from the product's current
// field values: the non-empty values among title, brand, and category become
// input terms, and the category (when present) becomes the context.
func BuildSuggestion(p *Product) Suggestion {
	input := make([]string, 0, 3)
	for _, v := range []string{p.Title, p.Brand, p.Category} {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			input = append(input, trimmed)
		}
	}

	s := Suggestion{Input: input}
	if category := strings.TrimSpace(p.Category); category != "" {
		s.Contexts = map[string][]string{"category": {category}}
	}
	return s
}
