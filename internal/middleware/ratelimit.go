package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jobtracker/jobtracker/internal/auth"
	"github.com/jobtracker/jobtracker/internal/cache"
	"github.com/jobtracker/jobtracker/internal/metrics"
)

// RateLimiter is implemented by *cache.Cache.
type RateLimiter interface {
	CheckSubjectRateLimit(ctx context.Context, subject string, ratePerMinute, burst int) (*cache.RateLimitResult, error)
	CheckIPRateLimit(ctx context.Context, ip string, ratePerSecond, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for rate limiting middleware.
// A nil Limiter disables both limits.
type RateLimitConfig struct {
	Logger  *slog.Logger
	Limiter RateLimiter
	Metrics metrics.Recorder

	// Authenticated API traffic, per account.
	APIEnabled bool
	APIRPM     int
	APIBurst   int

	// Register and login, per client IP.
	AuthEnabled bool
	AuthRPS     int
	AuthBurst   int
}

func (cfg RateLimitConfig) recorder() metrics.Recorder {
	if cfg.Metrics == nil {
		return metrics.NewNoop()
	}
	return cfg.Metrics
}

// RateLimitAPI returns middleware that rate limits API requests per
// authenticated account. Must be applied after Auth.
func RateLimitAPI(cfg RateLimitConfig) func(http.Handler) http.Handler {
	recorder := cfg.recorder()

	return func(next http.Handler) http.Handler {
		if !cfg.APIEnabled || cfg.Limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := auth.SubjectFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			result, err := cfg.Limiter.CheckSubjectRateLimit(r.Context(), subject, cfg.APIRPM, cfg.APIBurst)
			if err != nil {
				cfg.Logger.Error("rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("type", "api"),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				// Fail open
				next.ServeHTTP(w, r)
				return
			}

			setRateLimitHeaders(w, cfg.APIRPM, result.Remaining, result.ResetAt)

			if !result.Allowed {
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("type", "api"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int64("retry_after_seconds", int64(result.RetryAfter.Seconds())),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncRateLimited("api")
				writeRateLimitError(w, result.RetryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitAuth returns middleware that rate limits the credential endpoints
// per client IP.
func RateLimitAuth(cfg RateLimitConfig) func(http.Handler) http.Handler {
	recorder := cfg.recorder()

	return func(next http.Handler) http.Handler {
		if !cfg.AuthEnabled || cfg.Limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)

			result, err := cfg.Limiter.CheckIPRateLimit(r.Context(), ip, cfg.AuthRPS, cfg.AuthBurst)
			if err != nil {
				cfg.Logger.Error("IP rate limit check failed",
					slog.String("error", err.Error()),
					slog.String("type", "auth"),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				cfg.Logger.Warn("rate limit exceeded",
					slog.String("type", "auth"),
					slog.String("ip", ip),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.Int64("retry_after_seconds", int64(result.RetryAfter.Seconds())),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncRateLimited("auth")
				writeRateLimitError(w, result.RetryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// setRateLimitHeaders sets standard rate limit response headers.
func setRateLimitHeaders(w http.ResponseWriter, limit int, remaining int64, resetAt time.Time) {
	if limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
	}
}

// writeRateLimitError writes a 429 Too Many Requests response.
func writeRateLimitError(w http.ResponseWriter, retryAfter time.Duration) {
	seconds := int(retryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	writeError(w, http.StatusTooManyRequests,
		fmt.Sprintf("Rate limit exceeded. Retry after %d seconds.", seconds))
}

// getClientIP returns the request's client address without the port.
// chi's RealIP middleware has already folded X-Forwarded-For / X-Real-IP
// into RemoteAddr when it is mounted.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
