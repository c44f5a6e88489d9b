package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins lists exact origins ("https://app.example.com") or
	// subdomain wildcards ("*.example.com"). Empty denies all cross-origin
	// requests.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	// MaxAge is the Access-Control-Max-Age value in seconds.
	MaxAge int
}

// DefaultCORSConfig returns the methods and headers the API uses.
// Bearer tokens travel in a header, so credentials are never allowed.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID", "Accept"},
		ExposedHeaders: []string{
			"X-Request-ID",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
			"Retry-After",
		},
		MaxAge: 86400,
	}
}

// CORS returns a middleware that handles Cross-Origin Resource Sharing,
// including preflight OPTIONS requests.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")

	exact := make(map[string]bool, len(cfg.AllowedOrigins))
	var suffixes []string
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.ToLower(strings.TrimSpace(origin))
		if strings.HasPrefix(origin, "*.") {
			suffixes = append(suffixes, origin[1:])
			continue
		}
		exact[origin] = true
	}

	allowed := func(origin string) bool {
		origin = strings.ToLower(origin)
		if exact[origin] {
			return true
		}
		for _, suffix := range suffixes {
			host := strings.TrimSuffix(origin, suffix)
			// "*.example.com" matches "https://api.example.com" only, not
			// "https://badexample.com".
			if host != origin && strings.Contains(host, "://") && !strings.HasSuffix(host, "://") {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")

			if !allowed(origin) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				// The browser blocks the response without CORS headers.
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			if exposed != "" {
				w.Header().Set("Access-Control-Expose-Headers", exposed)
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				if cfg.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
