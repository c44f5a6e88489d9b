package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Service errors.
var (
	ErrApplicationNotFound         = errors.New("application not found")
	ErrNoteNotFound                = errors.New("note not found")
	ErrDuplicateEmail              = errors.New("email already registered")
	ErrInvalidCredentials          = errors.New("invalid email or password")
	ErrAuthenticatedAccountMissing = errors.New("authenticated account not found")
)

// NotFoundError identifies the missing resource. It unwraps to
// ErrApplicationNotFound or ErrNoteNotFound.
type NotFoundError struct {
	Resource string
	ID       int64
	kind     error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.kind
}

func applicationNotFound(id int64) error {
	return &NotFoundError{Resource: "Application", ID: id, kind: ErrApplicationNotFound}
}

func noteNotFound(id int64) error {
	return &NotFoundError{Resource: "Note", ID: id, kind: ErrNoteNotFound}
}

// ValidationError lists rejected input fields with a message each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// fieldErrors keeps the first message reported for each field.
type fieldErrors map[string]string

func (f fieldErrors) require(ok bool, field, message string) {
	if !ok {
		if _, exists := f[field]; !exists {
			f[field] = message
		}
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
