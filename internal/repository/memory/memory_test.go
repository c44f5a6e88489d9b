package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobtracker/jobtracker/internal/model"
	"github.com/jobtracker/jobtracker/internal/repository"
)

func seedAccount(t *testing.T, s *Store, email string) *model.Account {
	t.Helper()
	acc := &model.Account{Email: email, PasswordHash: "hash", FullName: email}
	err := s.WriteTx(context.Background(), func(q repository.Querier) error {
		return q.CreateAccount(context.Background(), acc)
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	return acc
}

func seedApplication(t *testing.T, s *Store, owner *model.Account) *model.Application {
	t.Helper()
	app := &model.Application{
		OwnerID:         owner.ID,
		CompanyName:     "Acme",
		PositionTitle:   "Engineer",
		Status:          model.StatusApplied,
		ApplicationDate: model.NewDate(2024, time.January, 10),
	}
	err := s.WriteTx(context.Background(), func(q repository.Querier) error {
		return q.CreateApplication(context.Background(), app)
	})
	if err != nil {
		t.Fatalf("CreateApplication failed: %v", err)
	}
	return app
}

func seedNote(t *testing.T, s *Store, app *model.Application, content string) *model.Note {
	t.Helper()
	note := &model.Note{ApplicationID: app.ID, Content: content}
	err := s.WriteTx(context.Background(), func(q repository.Querier) error {
		return q.CreateNote(context.Background(), note)
	})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	return note
}

func TestStore_SequentialIDsStartAtOne(t *testing.T) {
	t.Parallel()

	s := New()
	alice := seedAccount(t, s, "alice@example.com")
	first := seedApplication(t, s, alice)
	second := seedApplication(t, s, alice)

	if alice.ID != 1 || first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = account %d, apps %d/%d; want 1, 1/2", alice.ID, first.ID, second.ID)
	}
}

func TestStore_DuplicateEmail(t *testing.T) {
	t.Parallel()

	s := New()
	seedAccount(t, s, "alice@example.com")

	err := s.WriteTx(context.Background(), func(q repository.Querier) error {
		return q.CreateAccount(context.Background(), &model.Account{Email: "alice@example.com"})
	})
	if !errors.Is(err, repository.ErrEmailExists) {
		t.Errorf("error = %v, want ErrEmailExists", err)
	}
}

func TestStore_WriteTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	s := New()
	alice := seedAccount(t, s, "alice@example.com")

	boom := errors.New("boom")
	err := s.WriteTx(context.Background(), func(q repository.Querier) error {
		app := &model.Application{OwnerID: alice.ID, CompanyName: "Ghost", Status: model.StatusApplied}
		if err := q.CreateApplication(context.Background(), app); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WriteTx error = %v, want boom", err)
	}

	err = s.ReadTx(context.Background(), func(q repository.Querier) error {
		apps, err := q.ListApplications(context.Background(), "alice@example.com")
		if err != nil {
			return err
		}
		if len(apps) != 0 {
			t.Errorf("len(apps) = %d, want 0 after rollback", len(apps))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ReadTx failed: %v", err)
	}

	// the rolled-back insert must not consume an id
	app := seedApplication(t, s, alice)
	if app.ID != 1 {
		t.Errorf("ID = %d, want 1", app.ID)
	}
}

func TestStore_ReadTxRejectsWrites(t *testing.T) {
	t.Parallel()

	s := New()
	err := s.ReadTx(context.Background(), func(q repository.Querier) error {
		return q.CreateAccount(context.Background(), &model.Account{Email: "x@example.com"})
	})
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("error = %v, want ErrReadOnly", err)
	}
}

func TestStore_OwnerFiltering(t *testing.T) {
	t.Parallel()

	s := New()
	alice := seedAccount(t, s, "alice@example.com")
	seedAccount(t, s, "bob@example.com")
	app := seedApplication(t, s, alice)
	note := seedNote(t, s, app, "call recruiter")

	ctx := context.Background()
	err := s.ReadTx(ctx, func(q repository.Querier) error {
		if _, err := q.FindApplication(ctx, app.ID, "bob@example.com"); !errors.Is(err, repository.ErrApplicationNotFound) {
			t.Errorf("FindApplication as bob: %v, want ErrApplicationNotFound", err)
		}
		if _, err := q.FindApplication(ctx, app.ID, "nobody@example.com"); !errors.Is(err, repository.ErrApplicationNotFound) {
			t.Errorf("FindApplication as unknown: %v, want ErrApplicationNotFound", err)
		}
		if _, err := q.FindNote(ctx, app.ID, note.ID, "bob@example.com"); !errors.Is(err, repository.ErrNoteNotFound) {
			t.Errorf("FindNote as bob: %v, want ErrNoteNotFound", err)
		}
		apps, err := q.ListApplications(ctx, "bob@example.com")
		if err != nil || len(apps) != 0 {
			t.Errorf("ListApplications as bob = %d, %v; want 0, nil", len(apps), err)
		}
		notes, err := q.ListNotes(ctx, app.ID, "bob@example.com")
		if err != nil || len(notes) != 0 {
			t.Errorf("ListNotes as bob = %d, %v; want 0, nil", len(notes), err)
		}

		got, err := q.FindNote(ctx, app.ID, note.ID, "alice@example.com")
		if err != nil {
			t.Fatalf("FindNote as alice: %v", err)
		}
		if got.Content != "call recruiter" {
			t.Errorf("Content = %q, want call recruiter", got.Content)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ReadTx failed: %v", err)
	}
}

func TestStore_NoteMustBelongToApplication(t *testing.T) {
	t.Parallel()

	s := New()
	alice := seedAccount(t, s, "alice@example.com")
	first := seedApplication(t, s, alice)
	second := seedApplication(t, s, alice)
	note := seedNote(t, s, first, "on first")

	err := s.ReadTx(context.Background(), func(q repository.Querier) error {
		_, err := q.FindNote(context.Background(), second.ID, note.ID, "alice@example.com")
		if !errors.Is(err, repository.ErrNoteNotFound) {
			t.Errorf("FindNote via other application: %v, want ErrNoteNotFound", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ReadTx failed: %v", err)
	}
}

func TestStore_DeleteApplicationCascadesNotes(t *testing.T) {
	t.Parallel()

	s := New()
	alice := seedAccount(t, s, "alice@example.com")
	app := seedApplication(t, s, alice)
	other := seedApplication(t, s, alice)
	seedNote(t, s, app, "one")
	seedNote(t, s, app, "two")
	kept := seedNote(t, s, other, "keep me")

	ctx := context.Background()
	err := s.WriteTx(ctx, func(q repository.Querier) error {
		return q.DeleteApplication(ctx, app.ID)
	})
	if err != nil {
		t.Fatalf("DeleteApplication failed: %v", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.state.notes) != 1 {
		t.Errorf("remaining notes = %d, want 1", len(s.state.notes))
	}
	if _, ok := s.state.notes[kept.ID]; !ok {
		t.Error("note of another application should survive")
	}
}

func TestStore_UpdateRefreshesTimestamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return now }))
	alice := seedAccount(t, s, "alice@example.com")
	app := seedApplication(t, s, alice)
	note := seedNote(t, s, app, "draft")

	now = now.Add(time.Minute)
	ctx := context.Background()
	err := s.WriteTx(ctx, func(q repository.Querier) error {
		app.CompanyName = "Acme Corp"
		if err := q.UpdateApplication(ctx, app); err != nil {
			return err
		}
		note.Content = "final"
		return q.UpdateNote(ctx, note)
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if !app.UpdatedAt.Equal(now) || app.CreatedAt.Equal(now) {
		t.Errorf("application timestamps created=%v updated=%v", app.CreatedAt, app.UpdatedAt)
	}
	if !note.UpdatedAt.Equal(now) || note.CreatedAt.Equal(now) {
		t.Errorf("note timestamps created=%v updated=%v", note.CreatedAt, note.UpdatedAt)
	}
}

func TestStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := New().WriteTx(ctx, func(repository.Querier) error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if called {
		t.Error("callback should not run with a canceled context")
	}
}
