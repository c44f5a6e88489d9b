package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jobtracker/jobtracker/internal/metrics"
	"github.com/jobtracker/jobtracker/internal/model"
	"github.com/jobtracker/jobtracker/internal/repository"
)

// AccountService handles registration and login.
type AccountService struct {
	store   Store
	hasher  PasswordHasher
	tokens  TokenIssuer
	metrics metrics.Recorder

	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService creates a new AccountService.
func NewAccountService(store Store, hasher PasswordHasher, tokens TokenIssuer, recorder metrics.Recorder) *AccountService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AccountService{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		metrics: recorder,
	}
}

// RegisterInput defines input for registering an account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Email     string
	FullName  string
}

// Register creates an account. The email must not be registered yet.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*model.Account, error) {
	errs := fieldErrors{}
	errs.require(strings.TrimSpace(input.Email) != "", "email", "Email is required")
	errs.require(input.Password != "", "password", "Password is required")
	errs.require(strings.TrimSpace(input.FullName) != "", "fullName", "Full name is required")
	if err := errs.err(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
	}

	err = s.store.WriteTx(ctx, func(q repository.Querier) error {
		_, err := q.GetAccountByEmail(ctx, input.Email)
		switch {
		case err == nil:
			return ErrDuplicateEmail
		case !errors.Is(err, repository.ErrAccountNotFound):
			return fmt.Errorf("check email: %w", err)
		}

		if err := q.CreateAccount(ctx, account); err != nil {
			if errors.Is(err, repository.ErrEmailExists) {
				return ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncAccountRegistered()
	return account, nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password both return ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var account *model.Account
	err := s.store.ReadTx(ctx, func(q repository.Querier) error {
		var err error
		account, err = q.GetAccountByEmail(ctx, email)
		return err
	})

	if errors.Is(err, repository.ErrAccountNotFound) {
		// Keep the unknown-email path as slow as a real verification.
		_, _ = s.hasher.Verify(password, s.dummy())
		s.metrics.IncLogin(false)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.metrics.IncLogin(false)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLogin(true)
	return &LoginResult{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		Email:     account.Email,
		FullName:  account.FullName,
	}, nil
}

// fallbackDummyHash is a well-formed Argon2id hash at default cost that no
// password matches. It is used when hashing the dummy password fails.
const fallbackDummyHash = "$argon2id$v=19$m=65536,t=3,p=4$" +
	"AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// dummy returns the hash verified against on unknown-email logins.
func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("dummy-password")
		if err != nil {
			hash = fallbackDummyHash
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
