package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/jobtracker/jobtracker/migrations"
)

// Migrator applies the embedded schema migrations.
type Migrator struct {
	m      *migrate.Migrate
	logger *slog.Logger
}

// NewMigrator opens a dedicated database/sql connection for migrations.
func NewMigrator(databaseURL string, logger *slog.Logger) (*Migrator, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open migration db: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up applies all pending migrations. It is a no-op when the schema is current.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("migrations_current")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	m.logVersion("migrations_applied")
	return nil
}

// Down rolls back the given number of migrations.
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	if err := m.m.Steps(-steps); err != nil {
		return fmt.Errorf("roll back migrations: %w", err)
	}
	m.logVersion("migrations_rolled_back")
	return nil
}

// Version returns the current schema version and dirty flag.
// A database without any applied migration reports version 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Close releases the migration source and the database handle opened by
// NewMigrator.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration db: %w", dbErr)
	}
	return nil
}

func (m *Migrator) logVersion(msg string) {
	version, dirty, err := m.Version()
	if err != nil {
		m.logger.Warn(msg, slog.String("error", err.Error()))
		return
	}
	m.logger.Info(msg, slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
}
