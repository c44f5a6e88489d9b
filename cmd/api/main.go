// Package main is the entrypoint for the job tracker API server.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jobtracker/jobtracker/internal/auth"
	"github.com/jobtracker/jobtracker/internal/cache"
	"github.com/jobtracker/jobtracker/internal/config"
	"github.com/jobtracker/jobtracker/internal/handler"
	"github.com/jobtracker/jobtracker/internal/metrics"
	"github.com/jobtracker/jobtracker/internal/middleware"
	"github.com/jobtracker/jobtracker/internal/repository"
	"github.com/jobtracker/jobtracker/internal/repository/memory"
	"github.com/jobtracker/jobtracker/internal/server"
	"github.com/jobtracker/jobtracker/internal/service"
)

// store is what the services and the readiness probe need from storage.
type store interface {
	service.Store
	handler.HealthChecker
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to read .env file", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	recorder := metrics.NewPrometheus()

	routerCfg := handler.RouterConfig{
		Logger:             logger,
		Metrics:            recorder,
		MetricsHandler:     recorder.Handler(),
		IsDevelopment:      cfg.IsDevelopment(),
		CORSAllowedOrigins: cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		RateLimit: middleware.RateLimitConfig{
			APIEnabled:  cfg.RateLimitAPIEnabled,
			APIRPM:      cfg.RateLimitAPIRPM,
			APIBurst:    cfg.RateLimitAPIBurst,
			AuthEnabled: cfg.RateLimitAuthEnabled,
			AuthRPS:     cfg.RateLimitAuthRPS,
			AuthBurst:   cfg.RateLimitAuthBurst,
		},
	}

	var shutdowns []func(*server.Server)

	var st store
	switch cfg.StorageDriver {
	case config.StorageMemory:
		st = memory.New()
		logger.Warn("using in-memory storage, data is lost on restart")
	default:
		if cfg.MigrateOnStart {
			if err := migrateUp(cfg.DatabaseURL, logger); err != nil {
				return err
			}
		}

		repo, err := repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			return errors.New("database unavailable")
		}
		logger.Info("connected to database")
		st = repo
		shutdowns = append(shutdowns, func(srv *server.Server) {
			srv.OnShutdown("database", func(context.Context) error {
				repo.Close()
				return nil
			})
		})
	}

	// Interfaces stay nil without Redis so readiness reports "not configured"
	// and rate limiting is skipped.
	if cfg.RedisURL != "" {
		cacheClient, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			return errors.New("redis unavailable")
		}
		logger.Info("connected to Redis")
		routerCfg.Cache = cacheClient
		routerCfg.RateLimit.Limiter = cacheClient
		shutdowns = append(shutdowns, func(srv *server.Server) {
			srv.OnShutdown("redis", func(context.Context) error {
				return cacheClient.Close()
			})
		})
	} else {
		logger.Warn("REDIS_URL not set, rate limiting disabled")
	}

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTTTL, auth.WithIssuer(cfg.JWTIssuer))
	hasher := auth.NewArgon2Hasher(auth.DefaultArgon2Params)

	routerCfg.Store = st
	routerCfg.Tokens = tokens
	routerCfg.Accounts = service.NewAccountService(st, hasher, tokens, recorder)
	routerCfg.Applications = service.NewApplicationService(st, recorder)
	routerCfg.Notes = service.NewNoteService(st, recorder)

	srv := server.New(handler.NewRouter(routerCfg), server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	for _, register := range shutdowns {
		register(srv)
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"storage", cfg.StorageDriver,
	)

	return srv.Run(ctx)
}

func migrateUp(databaseURL string, logger *slog.Logger) error {
	m, err := repository.NewMigrator(databaseURL, logger)
	if err != nil {
		logger.Error("failed to prepare migrations", "error", sanitizeError(err, databaseURL))
		return errors.New("migrations unavailable")
	}
	defer func() { _ = m.Close() }()

	if err := m.Up(); err != nil {
		logger.Error("failed to apply migrations", "error", sanitizeError(err, databaseURL))
		return errors.New("migrations failed")
	}
	return nil
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
