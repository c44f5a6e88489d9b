package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobtracker/jobtracker/internal/model"
	"github.com/jobtracker/jobtracker/internal/repository"
)

// ResolveApplication returns the application with id if subject owns it.
// A missing application and one owned by another account produce the same
// error.
func ResolveApplication(ctx context.Context, q repository.Querier, id int64, subject string) (*model.Application, error) {
	app, err := q.FindApplication(ctx, id, subject)
	if errors.Is(err, repository.ErrApplicationNotFound) {
		return nil, applicationNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve application %d: %w", id, err)
	}
	return app, nil
}

// ResolveNote returns the note with noteID if it belongs to applicationID
// and subject owns that application. The application is checked first, then
// the note is looked up through its own owner-filtered query.
func ResolveNote(ctx context.Context, q repository.Querier, applicationID, noteID int64, subject string) (*model.Note, error) {
	if _, err := ResolveApplication(ctx, q, applicationID, subject); err != nil {
		return nil, err
	}

	note, err := q.FindNote(ctx, applicationID, noteID, subject)
	if errors.Is(err, repository.ErrNoteNotFound) {
		return nil, noteNotFound(noteID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve note %d: %w", noteID, err)
	}
	return note, nil
}
