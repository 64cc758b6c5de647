package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("product", "abc-123")

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Message, "abc-123")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUnavailable_WrapsDiagnostic(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:9200: connection refused")
	err := Unavailable("elasticsearch", cause)

	assert.Equal(t, "BACKEND_UNAVAILABLE", err.Code)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.Equal(t, "elasticsearch is unavailable", err.Message)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(err, cause))
	// The caller-facing message never carries the diagnostic.
	assert.NotContains(t, err.Message, "connection refused")
}

func TestHTTPStatus_Sentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"conflict", ErrConflict, http.StatusConflict},
		{"unavailable", ErrUnavailable, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped not found", Wrap(ErrNotFound, "get product"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_AppErrorWins(t *testing.T) {
	err := Wrap(InvalidInput("title is required"), "create product")
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}
