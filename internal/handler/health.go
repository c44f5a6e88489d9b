package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// readyTimeout bounds all dependency pings of one readiness probe.
const readyTimeout = 5 * time.Second

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	store HealthChecker
	cache HealthChecker
}

// NewHealthHandler creates a new HealthHandler. cache is nil when rate
// limiting runs without Redis.
func NewHealthHandler(store, cache HealthChecker) *HealthHandler {
	return &HealthHandler{store: store, cache: cache}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is the liveness probe. It never touches dependencies.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is the readiness probe: 200 only when the store and, if
// configured, Redis answer a ping.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := make(map[string]string, 2)
	healthy := true

	check := func(name string, c HealthChecker) {
		if c == nil {
			checks[name] = "not configured"
			return
		}
		if err := c.Ping(ctx); err != nil {
			// Error text may carry hostnames; keep it out of the response.
			checks[name] = "unavailable"
			healthy = false
			return
		}
		checks[name] = "ok"
	}

	check("store", h.store)
	check("redis", h.cache)

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Checks: checks})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Checks: checks})
}
