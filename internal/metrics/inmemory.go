package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	HTTPRequests        uint64
	AccountsRegistered  uint64
	LoginSuccesses      uint64
	LoginFailures       uint64
	TokensRejected      uint64
	RateLimited         uint64
	ApplicationsCreated uint64
	ApplicationsUpdated uint64
	ApplicationsDeleted uint64
	NotesCreated        uint64
	NotesUpdated        uint64
	NotesDeleted        uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	httpRequests        atomic.Uint64
	accountsRegistered  atomic.Uint64
	loginSuccesses      atomic.Uint64
	loginFailures       atomic.Uint64
	tokensRejected      atomic.Uint64
	rateLimited         atomic.Uint64
	applicationsCreated atomic.Uint64
	applicationsUpdated atomic.Uint64
	applicationsDeleted atomic.Uint64
	notesCreated        atomic.Uint64
	notesUpdated        atomic.Uint64
	notesDeleted        atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		HTTPRequests:        m.httpRequests.Load(),
		AccountsRegistered:  m.accountsRegistered.Load(),
		LoginSuccesses:      m.loginSuccesses.Load(),
		LoginFailures:       m.loginFailures.Load(),
		TokensRejected:      m.tokensRejected.Load(),
		RateLimited:         m.rateLimited.Load(),
		ApplicationsCreated: m.applicationsCreated.Load(),
		ApplicationsUpdated: m.applicationsUpdated.Load(),
		ApplicationsDeleted: m.applicationsDeleted.Load(),
		NotesCreated:        m.notesCreated.Load(),
		NotesUpdated:        m.notesUpdated.Load(),
		NotesDeleted:        m.notesDeleted.Load(),
	}
}

// ObserveHTTPRequest counts handled requests.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.Add(1)
}

// IncAccountRegistered increments the registration counter.
func (m *InMemoryRecorder) IncAccountRegistered() { m.accountsRegistered.Add(1) }

// IncLogin increments the login success or failure counter.
func (m *InMemoryRecorder) IncLogin(success bool) {
	if success {
		m.loginSuccesses.Add(1)
		return
	}
	m.loginFailures.Add(1)
}

// IncTokenRejected increments the rejected token counter.
func (m *InMemoryRecorder) IncTokenRejected(reason string) { m.tokensRejected.Add(1) }

// IncRateLimited increments the throttled request counter.
func (m *InMemoryRecorder) IncRateLimited(scope string) { m.rateLimited.Add(1) }

func (m *InMemoryRecorder) IncApplicationCreated() { m.applicationsCreated.Add(1) }
func (m *InMemoryRecorder) IncApplicationUpdated() { m.applicationsUpdated.Add(1) }
func (m *InMemoryRecorder) IncApplicationDeleted() { m.applicationsDeleted.Add(1) }
func (m *InMemoryRecorder) IncNoteCreated()        { m.notesCreated.Add(1) }
func (m *InMemoryRecorder) IncNoteUpdated()        { m.notesUpdated.Add(1) }
func (m *InMemoryRecorder) IncNoteDeleted()        { m.notesDeleted.Add(1) }
