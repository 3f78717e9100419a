// Package requesttime pins one "now" per HTTP request so every timestamp a
// request writes (consent decisions, activities, location fixes) agrees.
package requesttime

import (
	"net/http"
	"time"

	"atelier/pkg/requestcontext"
)

// Middleware stamps the request context with the time the request arrived.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
