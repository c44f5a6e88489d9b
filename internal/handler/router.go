package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jobtracker/jobtracker/internal/metrics"
	"github.com/jobtracker/jobtracker/internal/middleware"
	"github.com/jobtracker/jobtracker/internal/service"
)

// RouterConfig wires services and infrastructure into the HTTP API.
type RouterConfig struct {
	Logger *slog.Logger

	Accounts     *service.AccountService
	Applications *service.ApplicationService
	Notes        *service.NoteService
	Tokens       middleware.TokenValidator

	// Readiness checks. Cache is nil when Redis is not configured.
	Store HealthChecker
	Cache HealthChecker

	// RateLimit.Limiter nil disables rate limiting. Logger and Metrics
	// default to the router's.
	RateLimit middleware.RateLimitConfig

	Metrics        metrics.Recorder
	MetricsHandler http.Handler // mounted at /metrics when non-nil

	IsDevelopment      bool
	CORSAllowedOrigins []string
	MaxRequestBodySize int64
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	rateLimitCfg := cfg.RateLimit
	if rateLimitCfg.Logger == nil {
		rateLimitCfg.Logger = logger
	}
	if rateLimitCfg.Metrics == nil {
		rateLimitCfg.Metrics = recorder
	}

	authCfg := middleware.AuthConfig{
		Logger:  logger,
		Tokens:  cfg.Tokens,
		Metrics: recorder,
	}

	healthHandler := NewHealthHandler(cfg.Store, cfg.Cache)
	accountHandler := NewAccountHandler(cfg.Accounts, logger)
	applicationHandler := NewApplicationHandler(cfg.Applications, logger)
	noteHandler := NewNoteHandler(cfg.Notes, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger, recorder))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins)))

	// Probes and metrics (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

		// Credential endpoints, throttled per client IP
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimitAuth(rateLimitCfg))
			r.Post("/register", accountHandler.Register)
			r.Post("/login", accountHandler.Login)
		})

		// Everything else requires a bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))
			r.Use(middleware.RateLimitAPI(rateLimitCfg))

			r.Route("/applications", func(r chi.Router) {
				r.Get("/", applicationHandler.List)
				r.Post("/", applicationHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", applicationHandler.Get)
					r.Put("/", applicationHandler.Update)
					r.Delete("/", applicationHandler.Delete)

					r.Route("/notes", func(r chi.Router) {
						r.Get("/", noteHandler.List)
						r.Post("/", noteHandler.Create)
						r.Get("/{noteId}", noteHandler.Get)
						r.Put("/{noteId}", noteHandler.Update)
						r.Delete("/{noteId}", noteHandler.Delete)
					})
				})
			})
		})
	})

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}
