//go:build integration

package handler

import (
	"context"
	"testing"

	"github.com/jobtracker/jobtracker/internal/repository"
	"github.com/jobtracker/jobtracker/internal/testutil"
)

// TestIntegrationEndToEnd_AliceAndBob runs the same flow against Postgres.
func TestIntegrationEndToEnd_AliceAndBob(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() { _ = unlock() })

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	runAliceAndBob(t, newTestAPIWithStore(t, repo))
}
