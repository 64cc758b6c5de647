package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akyuz-dev/product-search-api/internal/domain"
)

func TestNoopProducesNoVector(t *testing.T) {
	vec, err := Noop{}.Embed(context.Background(), "Wireless Headphones")
	require.NoError(t, err)
	assert.Nil(t, vec)
}

func TestEmbeddingText(t *testing.T) {
	p := &domain.Product{
		Title:       "Wireless Headphones",
		Brand:       "Sony",
		Category:    "Electronics",
		Description: "Noise cancelling over-ear headphones",
	}
	assert.Equal(t, "Wireless Headphones Sony Electronics Noise cancelling over-ear headphones", EmbeddingText(p))
}

func TestEmbeddingTextSkipsEmptyFields(t *testing.T) {
	p := &domain.Product{Title: "Desk Lamp"}
	assert.Equal(t, "Desk Lamp", EmbeddingText(p))
}
