package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jobtracker"

// PrometheusRecorder exports Recorder events as Prometheus collectors.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	registered   prometheus.Counter
	logins       *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	rateLimited  *prometheus.CounterVec
	applications *prometheus.CounterVec
	notes        *prometheus.CounterVec
}

// NewPrometheus creates a recorder backed by its own registry, including
// the Go runtime and process collectors.
func NewPrometheus() *PrometheusRecorder {
	p := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		registered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accounts",
			Name:      "registered_total",
			Help:      "Accounts registered.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accounts",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "tokens_rejected_total",
			Help:      "Bearer tokens rejected by reason.",
		}, []string{"reason"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"scope"}),
		applications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "application_mutations_total",
			Help:      "Application writes by operation.",
		}, []string{"op"}),
		notes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "note_mutations_total",
			Help:      "Note writes by operation.",
		}, []string{"op"}),
	}

	p.registry.MustRegister(
		p.httpRequests,
		p.httpDuration,
		p.registered,
		p.logins,
		p.rejected,
		p.rateLimited,
		p.applications,
		p.notes,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	return p
}

// Handler returns an HTTP handler exposing the registered metrics.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (p *PrometheusRecorder) IncAccountRegistered() { p.registered.Inc() }

func (p *PrometheusRecorder) IncLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	p.logins.WithLabelValues(result).Inc()
}

func (p *PrometheusRecorder) IncTokenRejected(reason string) {
	p.rejected.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) IncRateLimited(scope string) {
	p.rateLimited.WithLabelValues(scope).Inc()
}

func (p *PrometheusRecorder) IncApplicationCreated() { p.applications.WithLabelValues("created").Inc() }
func (p *PrometheusRecorder) IncApplicationUpdated() { p.applications.WithLabelValues("updated").Inc() }
func (p *PrometheusRecorder) IncApplicationDeleted() { p.applications.WithLabelValues("deleted").Inc() }
func (p *PrometheusRecorder) IncNoteCreated()        { p.notes.WithLabelValues("created").Inc() }
func (p *PrometheusRecorder) IncNoteUpdated()        { p.notes.WithLabelValues("updated").Inc() }
func (p *PrometheusRecorder) IncNoteDeleted()        { p.notes.WithLabelValues("deleted").Inc() }
