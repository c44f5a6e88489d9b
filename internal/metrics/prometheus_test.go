package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder_Counters(t *testing.T) {
	t.Parallel()

	p := NewPrometheus()
	p.IncApplicationCreated()
	p.IncApplicationCreated()
	p.IncApplicationDeleted()
	p.IncNoteUpdated()
	p.IncLogin(true)
	p.IncLogin(false)
	p.IncLogin(false)
	p.IncTokenRejected("expired")
	p.IncRateLimited("auth")

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"applications created", testutil.ToFloat64(p.applications.WithLabelValues("created")), 2},
		{"applications deleted", testutil.ToFloat64(p.applications.WithLabelValues("deleted")), 1},
		{"notes updated", testutil.ToFloat64(p.notes.WithLabelValues("updated")), 1},
		{"login success", testutil.ToFloat64(p.logins.WithLabelValues("success")), 1},
		{"login failure", testutil.ToFloat64(p.logins.WithLabelValues("failure")), 2},
		{"token expired", testutil.ToFloat64(p.rejected.WithLabelValues("expired")), 1},
		{"rate limited", testutil.ToFloat64(p.rateLimited.WithLabelValues("auth")), 1},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestPrometheusRecorder_Handler(t *testing.T) {
	t.Parallel()

	p := NewPrometheus()
	p.ObserveHTTPRequest(http.MethodGet, "/api/applications", http.StatusOK, 12*time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	want := `jobtracker_http_requests_total{method="GET",route="/api/applications",status="200"} 1`
	if !strings.Contains(string(body), want) {
		t.Errorf("exposition missing %q", want)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("exposition should include Go runtime metrics")
	}
}

func TestInMemoryRecorder_Snapshot(t *testing.T) {
	t.Parallel()

	m := NewInMemory()
	m.IncAccountRegistered()
	m.IncLogin(true)
	m.IncLogin(false)
	m.IncNoteCreated()
	m.IncNoteDeleted()
	m.ObserveHTTPRequest(http.MethodPost, "/api/auth/login", http.StatusOK, time.Millisecond)

	got := m.Snapshot()
	want := Snapshot{
		HTTPRequests:       1,
		AccountsRegistered: 1,
		LoginSuccesses:     1,
		LoginFailures:      1,
		NotesCreated:       1,
		NotesDeleted:       1,
	}
	if got != want {
		t.Errorf("Snapshot = %+v, want %+v", got, want)
	}
}
