package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"docgen/internal/logger"
)

const (
	headerKey1 = "X-API-Key-1"
	headerKey2 = "X-API-Key-2"
)

// APIKeys is middleware that requires both X-API-Key-1 and X-API-Key-2 to
// match the configured keys.
func APIKeys(key1, key2 string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		// If no keys are configured, skip auth
		if key1 == "" && key2 == "" {
			log := logger.WithComponent("api")
			log.Warn().Msg("API_KEY_1 and API_KEY_2 not set, generation endpoints are unauthenticated")
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got1 := r.Header.Get(headerKey1)
			got2 := r.Header.Get(headerKey2)
			if got1 == "" || got2 == "" {
				writeError(w, http.StatusUnauthorized, "missing API keys")
				return
			}
			if !equal(got1, key1) || !equal(got2, key2) {
				writeError(w, http.StatusUnauthorized, "invalid API keys")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func equal(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// requestLogger logs each request through zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log := logger.WithRequestID(middleware.GetReqID(r.Context()))
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("Request served")
		}()
		next.ServeHTTP(ww, r)
	})
}
