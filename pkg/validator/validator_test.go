package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title    string  `validate:"required"`
	Price    float64 `validate:"gte=0"`
	PageSize int     `validate:"gt=0,lte=100"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(sample{Title: "Blue Widget", Price: 19.99, PageSize: 20})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	err := Validate(sample{Price: -1, PageSize: 0})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Title"])
	assert.Contains(t, fields["Price"], "greater than or equal to 0")
	assert.Contains(t, fields["PageSize"], "greater than 0")
	assert.Contains(t, err.Error(), "field 'Title' is required")
}
