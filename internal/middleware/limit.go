package middleware

import (
	"net/http"

	"github.com/josh-kwaku/bankist/internal/handler"
)

const defaultMaxInflight = 64

// Inflight caps concurrent requests and fails fast with 503 instead of
// queueing once max are in progress.
func Inflight(max int) func(http.Handler) http.Handler {
	if max <= 0 {
		max = defaultMaxInflight
	}
	sem := make(chan struct{}, max)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
				next.ServeHTTP(w, r)
			default:
				handler.RespondAppError(w, handler.ErrOverloaded, nil)
			}
		})
	}
}
