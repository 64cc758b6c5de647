package http

import (
	"net/http"
	"strings"

	apperrors "github.com/akyuz-dev/product-search-api/pkg/errors"
	"github.com/akyuz-dev/product-search-api/pkg/httputil"
)

// ContentTypeJSON rejects write requests whose body is not declared as JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteError(w, r,
					apperrors.InvalidInput("Content-Type must be application/json"), nil)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
