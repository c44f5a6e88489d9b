package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {}

// IncAccountRegistered is a no-op.
func (n *NoopRecorder) IncAccountRegistered() {}

// IncLogin is a no-op.
func (n *NoopRecorder) IncLogin(success bool) {}

// IncTokenRejected is a no-op.
func (n *NoopRecorder) IncTokenRejected(reason string) {}

// IncRateLimited is a no-op.
func (n *NoopRecorder) IncRateLimited(scope string) {}

// IncApplicationCreated is a no-op.
func (n *NoopRecorder) IncApplicationCreated() {}

// IncApplicationUpdated is a no-op.
func (n *NoopRecorder) IncApplicationUpdated() {}

// IncApplicationDeleted is a no-op.
func (n *NoopRecorder) IncApplicationDeleted() {}

// IncNoteCreated is a no-op.
func (n *NoopRecorder) IncNoteCreated() {}

// IncNoteUpdated is a no-op.
func (n *NoopRecorder) IncNoteUpdated() {}

// IncNoteDeleted is a no-op.
func (n *NoopRecorder) IncNoteDeleted() {}
