package repository

import (
	"context"

	"github.com/jobtracker/jobtracker/internal/model"
)

// Querier is the set of typed store operations available inside one
// transaction. Every application and note lookup is filtered by the owner's
// email in the same statement, so a row the caller does not own is
// indistinguishable from a missing one.
type Querier interface {
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	CreateAccount(ctx context.Context, account *model.Account) error

	ListApplications(ctx context.Context, ownerEmail string) ([]*model.Application, error)
	FindApplication(ctx context.Context, id int64, ownerEmail string) (*model.Application, error)
	CreateApplication(ctx context.Context, app *model.Application) error
	UpdateApplication(ctx context.Context, app *model.Application) error
	DeleteApplication(ctx context.Context, id int64) error

	ListNotes(ctx context.Context, applicationID int64, ownerEmail string) ([]*model.Note, error)
	FindNote(ctx context.Context, applicationID, noteID int64, ownerEmail string) (*model.Note, error)
	CreateNote(ctx context.Context, note *model.Note) error
	UpdateNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id int64) error
}

// Queries implements Querier over any DBTX.
type Queries struct {
	db   DBTX
	lock bool
}

var _ Querier = (*Queries)(nil)

// NewQueries wraps db. When lock is true, Find* statements take row locks.
func NewQueries(db DBTX, lock bool) *Queries {
	return &Queries{db: db, lock: lock}
}

// lockClause returns the row-lock suffix for Find* statements.
func (q *Queries) lockClause(table string) string {
	if !q.lock {
		return ""
	}
	return " FOR UPDATE OF " + table
}
