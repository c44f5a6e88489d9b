// Package service provides business logic for the application.
package service

import (
	"context"

	"github.com/jobtracker/jobtracker/internal/auth"
	"github.com/jobtracker/jobtracker/internal/repository"
)

// Store runs a unit of work inside a single transaction. Every service
// operation uses exactly one ReadTx or WriteTx call.
type Store interface {
	ReadTx(ctx context.Context, fn func(repository.Querier) error) error
	WriteTx(ctx context.Context, fn func(repository.Querier) error) error
}

// PasswordHasher is a one-way password hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// TokenIssuer issues bearer tokens for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string) (*auth.Token, error)
}
