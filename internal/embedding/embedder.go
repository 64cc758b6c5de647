// Package embedding turns product text into fixed-size vectors for the
// reserved dense_vector index field.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/akyuz-dev/product-search-api/internal/domain"
)

// Embedder produces a vector of domain.EmbeddingDimensions floats for a
// piece of product text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbedder calls the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAI creates an embedder backed by the OpenAI API. An empty model
// defaults to text-embedding-3-small.
func NewOpenAI(apiKey, baseURL, model string) *OpenAIEmbedder {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.EmbeddingModel(model),
	}
}

// Embed returns the embedding vector for the given text, truncated or
// requested at the index's fixed dimension count.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      e.model,
		Dimensions: domain.EmbeddingDimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings: empty response")
	}

	vec := resp.Data[0].Embedding
	if len(vec) != domain.EmbeddingDimensions {
		return nil, fmt.Errorf("openai embeddings: got %d dimensions, want %d",
			len(vec), domain.EmbeddingDimensions)
	}
	return vec, nil
}

// Noop is the disabled embedder: products are indexed without vectors.
type Noop struct{}

func (Noop) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, nil
}

// EmbeddingText concatenates the searchable product fields into the text
// that gets embedded.
func EmbeddingText(p *domain.Product) string {
	parts := make([]string, 0, 4)
	for _, v := range []string{p.Title, p.Brand, p.Category, p.Description} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
