package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jobtracker/jobtracker/internal/auth"
	"github.com/jobtracker/jobtracker/internal/metrics"
)

// Rejection reasons reported to logs and metrics.
const (
	reasonMissing   = "missing"
	reasonMalformed = "malformed"
	reasonInvalid   = "invalid"
	reasonExpired   = "expired"
)

// TokenValidator checks a bearer token and returns its subject.
type TokenValidator interface {
	Validate(token string) (string, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  TokenValidator
	Metrics metrics.Recorder
}

// Auth returns a middleware that authenticates API requests with a bearer
// token. On success the token subject is stored in the request context;
// every failure gets the same 401 body.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	reject := func(w http.ResponseWriter, r *http.Request, reason string) {
		cfg.Logger.Warn("authentication failed",
			slog.String("reason", reason),
			slog.String("ip", r.RemoteAddr),
			slog.String("endpoint", r.Method+" "+r.URL.Path),
			slog.String("request_id", GetRequestID(r.Context())),
		)
		recorder.IncTokenRejected(reason)
		writeAuthError(w)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, reason := extractBearerToken(r)
			if reason != "" {
				reject(w, r, reason)
				return
			}

			subject, err := cfg.Tokens.Validate(token)
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					reject(w, r, reasonExpired)
				} else {
					reject(w, r, reasonInvalid)
				}
				return
			}

			ctx := auth.ContextWithSubject(r.Context(), subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken returns the token from "Authorization: Bearer <token>",
// or a rejection reason when the header is absent or not a bearer credential.
func extractBearerToken(r *http.Request) (string, string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", reasonMissing
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", reasonMalformed
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", reasonMalformed
	}
	return token, ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	writeError(w, http.StatusUnauthorized, "Invalid or expired token")
}
