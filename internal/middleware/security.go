package middleware

import (
	"net/http"
)

// DefaultMaxRequestBodySize is applied when no limit is configured.
const DefaultMaxRequestBodySize int64 = 1 << 20

// SecurityConfig holds configuration for security headers.
type SecurityConfig struct {
	// IsDevelopment disables HSTS in dev environments.
	IsDevelopment bool
}

// Security returns a middleware that applies security headers to all responses.
//
// Headers applied:
//   - Strict-Transport-Security, outside development only
//   - X-Content-Type-Options: nosniff
//   - X-Frame-Options: DENY
//   - Referrer-Policy: no-referrer
//   - Content-Security-Policy: default-src 'none'
//   - Cache-Control: no-store
func Security(cfg SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			// === Prevent MIME type sniffing ===
			h.Set("X-Content-Type-Options", "nosniff")

			// === Prevent clickjacking ===
			h.Set("X-Frame-Options", "DENY")

			// === Control referrer information ===
			h.Set("Referrer-Policy", "no-referrer")

			// === Content Security Policy ===
			// JSON only, nothing to load or embed.
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			// === Prevent caching per-user data ===
			h.Set("Cache-Control", "no-store")

			// === HSTS (only outside development) ===
			// max-age=31536000 = 1 year
			if !cfg.IsDevelopment {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MaxBodySize returns a middleware that limits request body size.
// Requests that declare a larger Content-Length are rejected up front;
// streamed bodies fail on read once the limit is crossed.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBodySize
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			// Declared length is checked before anything is read.
			if r.ContentLength > maxBytes {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
				return
			}

			// Wrap body with MaxBytesReader for chunked or unknown-length bodies
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
