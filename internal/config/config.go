// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// MinJWTSecretLength is the minimum HS256 secret size in bytes.
const MinJWTSecretLength = 32

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Storage: "postgres" (default) or "memory" for throwaway local runs.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	// Apply embedded migrations before serving.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"false"`

	// Cache (Redis). Empty disables rate limiting.
	RedisURL string `env:"REDIS_URL"`

	// Bearer tokens
	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"jobtracker"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting
	RateLimitAPIEnabled  bool `env:"RATE_LIMIT_API_ENABLED" envDefault:"true"`
	RateLimitAPIRPM      int  `env:"RATE_LIMIT_API_RPM" envDefault:"120"`
	RateLimitAPIBurst    int  `env:"RATE_LIMIT_API_BURST" envDefault:"30"`
	RateLimitAuthEnabled bool `env:"RATE_LIMIT_AUTH_ENABLED" envDefault:"true"`
	RateLimitAuthRPS     int  `env:"RATE_LIMIT_AUTH_RPS" envDefault:"5"`
	RateLimitAuthBurst   int  `env:"RATE_LIMIT_AUTH_BURST" envDefault:"10"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres storage driver"))
		}
	case StorageMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("memory storage driver is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	if len(c.JWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretLength))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.RateLimitAPIRPM <= 0 || c.RateLimitAPIBurst <= 0 || c.RateLimitAuthRPS <= 0 || c.RateLimitAuthBurst <= 0 {
		errs = append(errs, errors.New("rate limit settings must be positive"))
	}

	return errors.Join(errs...)
}

// Load parses environment variables and returns a validated Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
