package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobtracker/jobtracker/internal/auth"
	"github.com/jobtracker/jobtracker/internal/model"
	"github.com/redis/go-redis/v9"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops every table by running all down migrations newest
// first, then recreates them with the up migrations.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downs, err := filepath.Glob(filepath.Join(root, "migrations", "*.down.sql"))
	if err != nil {
		return fmt.Errorf("list down migrations: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(downs)))

	ups, err := filepath.Glob(filepath.Join(root, "migrations", "*.up.sql"))
	if err != nil {
		return fmt.Errorf("list up migrations: %w", err)
	}
	sort.Strings(ups)

	// golang-migrate bookkeeping would otherwise disagree with the fresh schema.
	if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS schema_migrations"); err != nil {
		return fmt.Errorf("drop schema_migrations: %w", err)
	}

	for _, path := range append(downs, ups...) {
		sql, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", filepath.Base(path), err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", filepath.Base(path), err)
		}
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// FastHasher returns an Argon2id hasher with minimal cost for tests.
func FastHasher() *auth.Argon2Hasher {
	return auth.NewArgon2Hasher(auth.Argon2Params{
		Time:    1,
		Memory:  64,
		Threads: 1,
		KeyLen:  16,
		SaltLen: 8,
	})
}

// TestSecret is a JWT signing secret long enough to pass config validation.
var TestSecret = []byte("test-secret-test-secret-test-secret!")

// NewTestAccount creates an unsaved account with sensible defaults.
func NewTestAccount(t testing.TB, email string) *model.Account {
	t.Helper()
	return &model.Account{
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=64,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA",
		FullName:     strings.Split(email, "@")[0],
	}
}

// NewTestApplication creates an unsaved application owned by ownerID with
// only the required fields set.
func NewTestApplication(t testing.TB, ownerID int64, company string) *model.Application {
	t.Helper()
	return &model.Application{
		OwnerID:         ownerID,
		CompanyName:     company,
		PositionTitle:   "Software Engineer",
		Status:          model.StatusApplied,
		ApplicationDate: model.DateOf(time.Now().UTC()),
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
