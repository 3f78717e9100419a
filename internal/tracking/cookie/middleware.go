package cookie

import (
	"context"
	"net/http"
)

type jarKey struct{}

// Middleware binds an HTTPJar to every request and stores it in the context.
// Handlers retrieve it with FromContext.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jar := NewHTTPJar(w, r, opts...)
			next.ServeHTTP(w, r.WithContext(WithJar(r.Context(), jar)))
		})
	}
}

// WithJar injects a jar into a context.
func WithJar(ctx context.Context, jar Jar) context.Context {
	return context.WithValue(ctx, jarKey{}, jar)
}

// FromContext returns the jar stored by Middleware or WithJar.
func FromContext(ctx context.Context) (Jar, bool) {
	jar, ok := ctx.Value(jarKey{}).(Jar)
	return jar, ok && jar != nil
}
