package api

import (
	"net/http"

	"golang.org/x/sync/semaphore"
)

// BodyLimit caps the request body size so an oversized upload fails with a
// clear error instead of exhausting memory — the whole payload is read into
// memory before the provider calls.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ConcurrencyLimit bounds the number of in-flight conversation requests.
// Each accepted request holds two outbound provider calls open, so the cap
// keeps a burst of uploads from pinning unbounded connections. Requests over
// the cap are rejected immediately with 503 rather than queued.
func ConcurrencyLimit(maxInFlight int64) func(http.Handler) http.Handler {
	sem := semaphore.NewWeighted(maxInFlight)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sem.TryAcquire(1) {
				respondError(w, http.StatusServiceUnavailable, "server busy, try again shortly")
				return
			}
			defer sem.Release(1)
			next.ServeHTTP(w, r)
		})
	}
}
