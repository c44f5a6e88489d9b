// Package memory implements the repository Querier and transaction API in
// process memory. It backs local development runs and the service and
// handler tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jobtracker/jobtracker/internal/model"
	"github.com/jobtracker/jobtracker/internal/repository"
)

// ErrReadOnly is returned when a write is attempted inside ReadTx.
var ErrReadOnly = errors.New("write in read-only transaction")

type state struct {
	accounts     map[int64]model.Account
	applications map[int64]model.Application
	notes        map[int64]model.Note

	accountSeq     int64
	applicationSeq int64
	noteSeq        int64
}

func newState() *state {
	return &state{
		accounts:     make(map[int64]model.Account),
		applications: make(map[int64]model.Application),
		notes:        make(map[int64]model.Note),
	}
}

func (s *state) clone() *state {
	c := &state{
		accounts:       make(map[int64]model.Account, len(s.accounts)),
		applications:   make(map[int64]model.Application, len(s.applications)),
		notes:          make(map[int64]model.Note, len(s.notes)),
		accountSeq:     s.accountSeq,
		applicationSeq: s.applicationSeq,
		noteSeq:        s.noteSeq,
	}
	for id, a := range s.accounts {
		c.accounts[id] = a
	}
	for id, a := range s.applications {
		c.applications[id] = a
	}
	for id, n := range s.notes {
		c.notes[id] = n
	}
	return c
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is an in-memory, transactional store. Write transactions are
// serialized and work on a private copy that replaces the shared state only
// when the callback succeeds.
type Store struct {
	mu    sync.RWMutex
	state *state
	now   func() time.Time
}

// New creates an empty store. IDs start at 1.
func New(opts ...Option) *Store {
	s := &Store{
		state: newState(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// ReadTx runs fn against a consistent snapshot. Writes fail with ErrReadOnly.
func (s *Store) ReadTx(ctx context.Context, fn func(repository.Querier) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(&querier{st: s.state, now: s.now, readOnly: true})
}

// WriteTx runs fn with exclusive access. Changes are discarded if fn fails.
func (s *Store) WriteTx(ctx context.Context, fn func(repository.Querier) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(&querier{st: working, now: s.now}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = working
	return nil
}

type querier struct {
	st       *state
	now      func() time.Time
	readOnly bool
}

var _ repository.Querier = (*querier)(nil)

func (q *querier) writable() error {
	if q.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (q *querier) timestamp() time.Time {
	return q.now().UTC()
}

func (q *querier) accountByEmail(email string) (model.Account, bool) {
	for _, a := range q.st.accounts {
		if a.Email == email {
			return a, true
		}
	}
	return model.Account{}, false
}

func (q *querier) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	a, ok := q.accountByEmail(email)
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return &a, nil
}

func (q *querier) CreateAccount(_ context.Context, account *model.Account) error {
	if err := q.writable(); err != nil {
		return err
	}
	if _, exists := q.accountByEmail(account.Email); exists {
		return repository.ErrEmailExists
	}

	q.st.accountSeq++
	account.ID = q.st.accountSeq
	account.CreatedAt = q.timestamp()
	q.st.accounts[account.ID] = *account
	return nil
}

func (q *querier) ListApplications(_ context.Context, ownerEmail string) ([]*model.Application, error) {
	apps := make([]*model.Application, 0)
	owner, ok := q.accountByEmail(ownerEmail)
	if !ok {
		return apps, nil
	}
	for _, a := range q.st.applications {
		if a.OwnerID == owner.ID {
			apps = append(apps, cloneApplication(a))
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

func (q *querier) FindApplication(_ context.Context, id int64, ownerEmail string) (*model.Application, error) {
	a, ok := q.ownedApplication(id, ownerEmail)
	if !ok {
		return nil, repository.ErrApplicationNotFound
	}
	return cloneApplication(a), nil
}

func (q *querier) ownedApplication(id int64, ownerEmail string) (model.Application, bool) {
	owner, ok := q.accountByEmail(ownerEmail)
	if !ok {
		return model.Application{}, false
	}
	a, ok := q.st.applications[id]
	if !ok || a.OwnerID != owner.ID {
		return model.Application{}, false
	}
	return a, true
}

func (q *querier) CreateApplication(_ context.Context, app *model.Application) error {
	if err := q.writable(); err != nil {
		return err
	}
	if _, ok := q.st.accounts[app.OwnerID]; !ok {
		return errors.New("owner account does not exist")
	}

	now := q.timestamp()
	q.st.applicationSeq++
	app.ID = q.st.applicationSeq
	app.CreatedAt = now
	app.UpdatedAt = now
	q.st.applications[app.ID] = *cloneApplication(*app)
	return nil
}

func (q *querier) UpdateApplication(_ context.Context, app *model.Application) error {
	if err := q.writable(); err != nil {
		return err
	}
	existing, ok := q.st.applications[app.ID]
	if !ok {
		return repository.ErrApplicationNotFound
	}

	app.OwnerID = existing.OwnerID
	app.CreatedAt = existing.CreatedAt
	app.UpdatedAt = q.timestamp()
	q.st.applications[app.ID] = *cloneApplication(*app)
	return nil
}

func (q *querier) DeleteApplication(_ context.Context, id int64) error {
	if err := q.writable(); err != nil {
		return err
	}
	if _, ok := q.st.applications[id]; !ok {
		return repository.ErrApplicationNotFound
	}

	delete(q.st.applications, id)
	for noteID, n := range q.st.notes {
		if n.ApplicationID == id {
			delete(q.st.notes, noteID)
		}
	}
	return nil
}

func (q *querier) ListNotes(_ context.Context, applicationID int64, ownerEmail string) ([]*model.Note, error) {
	notes := make([]*model.Note, 0)
	if _, ok := q.ownedApplication(applicationID, ownerEmail); !ok {
		return notes, nil
	}
	for _, n := range q.st.notes {
		if n.ApplicationID == applicationID {
			n := n
			notes = append(notes, &n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (q *querier) FindNote(_ context.Context, applicationID, noteID int64, ownerEmail string) (*model.Note, error) {
	if _, ok := q.ownedApplication(applicationID, ownerEmail); !ok {
		return nil, repository.ErrNoteNotFound
	}
	n, ok := q.st.notes[noteID]
	if !ok || n.ApplicationID != applicationID {
		return nil, repository.ErrNoteNotFound
	}
	return &n, nil
}

func (q *querier) CreateNote(_ context.Context, note *model.Note) error {
	if err := q.writable(); err != nil {
		return err
	}
	if _, ok := q.st.applications[note.ApplicationID]; !ok {
		return errors.New("application does not exist")
	}

	now := q.timestamp()
	q.st.noteSeq++
	note.ID = q.st.noteSeq
	note.CreatedAt = now
	note.UpdatedAt = now
	q.st.notes[note.ID] = *note
	return nil
}

func (q *querier) UpdateNote(_ context.Context, note *model.Note) error {
	if err := q.writable(); err != nil {
		return err
	}
	existing, ok := q.st.notes[note.ID]
	if !ok {
		return repository.ErrNoteNotFound
	}

	existing.Content = note.Content
	existing.UpdatedAt = q.timestamp()
	q.st.notes[note.ID] = existing
	*note = existing
	return nil
}

func (q *querier) DeleteNote(_ context.Context, id int64) error {
	if err := q.writable(); err != nil {
		return err
	}
	if _, ok := q.st.notes[id]; !ok {
		return repository.ErrNoteNotFound
	}
	delete(q.st.notes, id)
	return nil
}

// cloneApplication copies a so that callers cannot reach stored pointers.
func cloneApplication(a model.Application) *model.Application {
	c := a
	c.Location = clonePtr(a.Location)
	c.WorkMode = clonePtr(a.WorkMode)
	c.Source = clonePtr(a.Source)
	c.PostingURL = clonePtr(a.PostingURL)
	c.SalaryMin = clonePtr(a.SalaryMin)
	c.SalaryMax = clonePtr(a.SalaryMax)
	c.NextStepDate = clonePtr(a.NextStepDate)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
