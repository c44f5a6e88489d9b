// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
type Recorder interface {
	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)

	// Identity metrics
	IncAccountRegistered()
	IncLogin(success bool)
	IncTokenRejected(reason string) // reason: "missing", "malformed", "invalid", "expired"
	IncRateLimited(scope string)    // scope: "api" or "auth"

	// Application and note metrics
	IncApplicationCreated()
	IncApplicationUpdated()
	IncApplicationDeleted()
	IncNoteCreated()
	IncNoteUpdated()
	IncNoteDeleted()
}
