// Package requesttime pins one timestamp per admin request. Audit events and
// the transfer-limit window read it through requestcontext.Now, so a batch
// call lands in a single window.
package requesttime

import (
	"net/http"
	"time"

	"assetgate/pkg/requestcontext"
)

// Clock returns the middleware with now as its time source, truncated to UTC
// seconds.
func Clock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), now().UTC().Truncate(time.Second))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Middleware pins the wall clock.
func Middleware(next http.Handler) http.Handler {
	return Clock(time.Now)(next)
}
