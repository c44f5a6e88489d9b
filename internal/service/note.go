package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobtracker/jobtracker/internal/metrics"
	"github.com/jobtracker/jobtracker/internal/model"
	"github.com/jobtracker/jobtracker/internal/repository"
)

// NoteService handles notes attached to applications.
type NoteService struct {
	store   Store
	metrics metrics.Recorder
}

// NewNoteService creates a new NoteService.
func NewNoteService(store Store, recorder metrics.Recorder) *NoteService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &NoteService{store: store, metrics: recorder}
}

func validateContent(content string) error {
	errs := fieldErrors{}
	errs.require(strings.TrimSpace(content) != "", "content", "Content is required")
	return errs.err()
}

// List returns the notes of an application owned by subject.
func (s *NoteService) List(ctx context.Context, applicationID int64, subject string) ([]*model.Note, error) {
	var notes []*model.Note
	err := s.store.ReadTx(ctx, func(q repository.Querier) error {
		if _, err := ResolveApplication(ctx, q, applicationID, subject); err != nil {
			return err
		}
		var err error
		notes, err = q.ListNotes(ctx, applicationID, subject)
		return err
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Get returns a single note.
func (s *NoteService) Get(ctx context.Context, applicationID, noteID int64, subject string) (*model.Note, error) {
	var note *model.Note
	err := s.store.ReadTx(ctx, func(q repository.Querier) error {
		var err error
		note, err = ResolveNote(ctx, q, applicationID, noteID, subject)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Create attaches a note to an application owned by subject.
func (s *NoteService) Create(ctx context.Context, applicationID int64, subject, content string) (*model.Note, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	note := &model.Note{ApplicationID: applicationID, Content: content}
	err := s.store.WriteTx(ctx, func(q repository.Querier) error {
		if _, err := ResolveApplication(ctx, q, applicationID, subject); err != nil {
			return err
		}
		return q.CreateNote(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncNoteCreated()
	return note, nil
}

// Update replaces the content of a note.
func (s *NoteService) Update(ctx context.Context, applicationID, noteID int64, subject, content string) (*model.Note, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	var note *model.Note
	err := s.store.WriteTx(ctx, func(q repository.Querier) error {
		var err error
		note, err = ResolveNote(ctx, q, applicationID, noteID, subject)
		if err != nil {
			return err
		}

		note.Content = content
		if err := q.UpdateNote(ctx, note); err != nil {
			return fmt.Errorf("update note %d: %w", noteID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncNoteUpdated()
	return note, nil
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, applicationID, noteID int64, subject string) error {
	err := s.store.WriteTx(ctx, func(q repository.Querier) error {
		if _, err := ResolveNote(ctx, q, applicationID, noteID, subject); err != nil {
			return err
		}
		if err := q.DeleteNote(ctx, noteID); err != nil {
			return fmt.Errorf("delete note %d: %w", noteID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncNoteDeleted()
	return nil
}
