package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockHealthChecker is a mock implementation of HealthChecker for testing.
type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	return m.err
}

func TestHealthHandler_Healthz(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&mockHealthChecker{err: errors.New("down")}, nil)

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("expected status 'ok', got %s", response.Status)
	}
}

func TestHealthHandler_Readyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		store      HealthChecker
		cache      HealthChecker
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "all healthy",
			store:      &mockHealthChecker{},
			cache:      &mockHealthChecker{},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]string{"store": "ok", "redis": "ok"},
		},
		{
			name:       "store unhealthy",
			store:      &mockHealthChecker{err: errors.New("dial tcp db.internal:5432: connection refused")},
			cache:      &mockHealthChecker{},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
			wantChecks: map[string]string{"store": "unavailable", "redis": "ok"},
		},
		{
			name:       "redis unhealthy",
			store:      &mockHealthChecker{},
			cache:      &mockHealthChecker{err: errors.New("i/o timeout")},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
			wantChecks: map[string]string{"store": "ok", "redis": "unavailable"},
		},
		{
			name:       "redis not configured",
			store:      &mockHealthChecker{},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]string{"store": "ok", "redis": "not configured"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler(tt.store, tt.cache)
			rec := httptest.NewRecorder()
			h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", rec.Code, tt.wantCode)
			}

			var response HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", response.Status, tt.wantStatus)
			}
			for name, want := range tt.wantChecks {
				if got := response.Checks[name]; got != want {
					t.Errorf("check %s = %q, want %q", name, got, want)
				}
			}
		})
	}
}
