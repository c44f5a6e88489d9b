package service

import (
	"context"
	"testing"
	"time"

	"github.com/jobtracker/jobtracker/internal/auth"
	"github.com/jobtracker/jobtracker/internal/metrics"
	"github.com/jobtracker/jobtracker/internal/model"
	"github.com/jobtracker/jobtracker/internal/repository/memory"
	"github.com/jobtracker/jobtracker/internal/testutil"
)

type testEnv struct {
	store    *memory.Store
	tokens   *auth.TokenService
	recorder *metrics.InMemoryRecorder
	accounts *AccountService
	apps     *ApplicationService
	notes    *NoteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.New()
	tokens := auth.NewTokenService(testutil.TestSecret, time.Hour)
	recorder := metrics.NewInMemory()

	return &testEnv{
		store:    store,
		tokens:   tokens,
		recorder: recorder,
		accounts: NewAccountService(store, testutil.FastHasher(), tokens, recorder),
		apps:     NewApplicationService(store, recorder),
		notes:    NewNoteService(store, recorder),
	}
}

func (e *testEnv) register(t *testing.T, email string) *model.Account {
	t.Helper()
	acc, err := e.accounts.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "password123",
		FullName: "Test User",
	})
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", email, err)
	}
	return acc
}

func (e *testEnv) createApplication(t *testing.T, subject, company string) *model.Application {
	t.Helper()
	app, err := e.apps.Create(context.Background(), subject, validInput(company))
	if err != nil {
		t.Fatalf("Create(%s) failed: %v", company, err)
	}
	return app
}

func validInput(company string) ApplicationInput {
	return ApplicationInput{
		CompanyName:     company,
		PositionTitle:   "Backend Engineer",
		Status:          model.StatusApplied,
		ApplicationDate: testutil.Ptr(model.NewDate(2024, time.March, 1)),
	}
}
