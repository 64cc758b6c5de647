package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akyuz-dev/product-search-api/internal/domain"
	"github.com/akyuz-dev/product-search-api/internal/engine/memory"
	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type stubEmbedder struct {
	vec  []float32
	err  error
	text string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.text = text
	return s.vec, s.err
}

func TestCreateAssignsServerSideFields(t *testing.T) {
	svc := NewProductService(memory.New(), nil, testLogger())

	created, err := svc.Create(context.Background(), &domain.Product{
		Title:    "Wireless Headphones",
		Brand:    "Sony",
		Category: "Electronics",
		Price:    199.99,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, []string{"Wireless Headphones", "Sony", "Electronics"}, created.Suggest.Input)
	assert.Equal(t, map[string][]string{"category": {"Electronics"}}, created.Suggest.Contexts)

	// A nil embedder falls back to the no-op: no vector on the document.
	assert.Nil(t, created.Embedding)
}

func TestCreateKeepsCallerID(t *testing.T) {
	svc := NewProductService(memory.New(), nil, testLogger())

	created, err := svc.Create(context.Background(), &domain.Product{ID: "p-42", Title: "Desk Lamp"})
	require.NoError(t, err)
	assert.Equal(t, "p-42", created.ID)
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := NewProductService(memory.New(), nil, testLogger())

	_, err := svc.Create(context.Background(), &domain.Product{Title: "   "})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateWithEmbedder(t *testing.T) {
	embedder := &stubEmbedder{vec: []float32{0.1, 0.2}}
	svc := NewProductService(memory.New(), embedder, testLogger())

	created, err := svc.Create(context.Background(), &domain.Product{
		Title: "Desk Lamp", Brand: "Ikea",
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, created.Embedding)
	assert.Equal(t, "Desk Lamp Ikea", embedder.text)
}

func TestCreateEmbeddingFailureIsNonFatal(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("quota exceeded")}
	svc := NewProductService(memory.New(), embedder, testLogger())

	created, err := svc.Create(context.Background(), &domain.Product{Title: "Desk Lamp"})
	require.NoError(t, err)
	assert.Nil(t, created.Embedding)
}

func TestCreateBulk(t *testing.T) {
	svc := NewProductService(memory.New(), nil, testLogger())

	items, err := svc.CreateBulk(context.Background(), []domain.Product{
		{ID: "p1", Title: "Wireless Headphones"},
		{ID: "p2", Title: ""},
		{ID: "p3", Title: "Espresso Machine"},
	})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.False(t, items[0].Failed())
	assert.True(t, items[1].Failed())
	assert.Contains(t, items[1].Error, "title is required")
	assert.False(t, items[2].Failed())

	// Only the valid items reached the index.
	_, err = svc.Get(context.Background(), "p1")
	assert.NoError(t, err)
	_, err = svc.Get(context.Background(), "p2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateBulkEmpty(t *testing.T) {
	svc := NewProductService(memory.New(), nil, testLogger())

	_, err := svc.CreateBulk(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdatePathIDWins(t *testing.T) {
	eng := memory.New()
	svc := NewProductService(eng, nil, testLogger())

	_, err := svc.Create(context.Background(), &domain.Product{ID: "p1", Title: "Old Title", Brand: "Sony"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "p1", &domain.Product{
		ID:    "different-id",
		Title: "New Title",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, []string{"New Title"}, updated.Suggest.Input)

	got, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Empty(t, got.Brand)
}

func TestDelete(t *testing.T) {
	svc := NewProductService(memory.New(), nil, testLogger())

	_, err := svc.Create(context.Background(), &domain.Product{ID: "p1", Title: "Desk Lamp"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "p1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "p1"), apperrors.ErrNotFound)
}
