package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jobtracker/jobtracker/internal/model"
)

// Common errors for account repository operations.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailExists     = errors.New("email already exists")
)

// CreateAccount inserts a new account and fills in its ID and CreatedAt.
func (q *Queries) CreateAccount(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (email, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.db.QueryRow(ctx, query,
		account.Email,
		account.PasswordHash,
		account.FullName,
	).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetAccountByEmail retrieves an account by its exact email address.
func (q *Queries) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `
		SELECT id, email, password_hash, full_name, created_at
		FROM accounts
		WHERE email = $1
	`

	var account model.Account
	err := q.db.QueryRow(ctx, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.FullName,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return &account, nil
}
