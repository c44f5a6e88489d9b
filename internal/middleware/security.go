package middleware

import (
	"net/http"
)

// SecurityConfig holds configuration for security headers.
type SecurityConfig struct {
	// HSTS is only sent outside development.
	IsDevelopment bool
}

// Security returns a middleware that sets security response headers for a
// JSON-only API: no sniffing, no framing, no caching, and HSTS in production.
func Security(cfg SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			// === Prevent MIME type sniffing ===
			h.Set("X-Content-Type-Options", "nosniff")

			// === Prevent clickjacking ===
			h.Set("X-Frame-Options", "DENY")

			// === Never leak resource URLs (they carry ids) ===
			h.Set("Referrer-Policy", "no-referrer")

			// === Content Security Policy ===
			// Nothing here is HTML, so nothing may load or frame it.
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			// === Permissions Policy (disable unused browser features) ===
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")

			// Responses carry account data and tokens.
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

// MaxBodySize rejects requests whose declared length exceeds maxBytes and
// caps streamed bodies with http.MaxBytesReader. Zero or negative disables
// the limit.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}

			next.ServeHTTP(w, r)
		})
	}
}
