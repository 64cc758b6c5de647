package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSuggestion_AllFieldsPresent(t *testing.T) {
	p := &Product{
		Title:    "Blue Widget",
		Brand:    "Acme",
		Category: "Hardware",
		Price:    19.99,
	}

	s := BuildSuggestion(p)

	assert.Equal(t, []string{"Blue Widget", "Acme", "Hardware"}, s.Input)
	assert.Equal(t, map[string][]string{"category": {"Hardware"}}, s.Contexts)
}

func TestBuildSuggestion_SkipsBlankFields(t *testing.T) {
	p := &Product{Title: "Widget", Brand: "   ", Category: ""}

	s := BuildSuggestion(p)

	assert.Equal(t, []string{"Widget"}, s.Input)
	assert.Nil(t, s.Contexts)
}

func TestBuildSuggestion_TrimsWhitespace(t *testing.T) {
	p := &Product{Title: "  Widget  ", Category: " Hardware "}

	s := BuildSuggestion(p)

	assert.Equal(t, []string{"Widget", "Hardware"}, s.Input)
	assert.Equal(t, []string{"Hardware"}, s.Contexts["category"])
}

func TestBuildSuggestion_EmptyProduct(t *testing.T) {
	s := BuildSuggestion(&Product{})

	assert.Empty(t, s.Input)
	assert.Nil(t, s.Contexts)
}
