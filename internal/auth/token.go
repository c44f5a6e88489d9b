package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and
	// unexpected algorithms.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates the token expiry is not after the current time.
	ErrExpiredToken = errors.New("token expired")
)

// Claims are the JWT claims issued for an authenticated account.
type Claims struct {
	jwt.RegisteredClaims
}

// Token is a freshly issued bearer token.
type Token struct {
	Value     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces the time source used for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// WithIssuer sets the iss claim and requires it on validation.
func WithIssuer(issuer string) TokenOption {
	return func(s *TokenService) {
		s.issuer = issuer
	}
}

// TokenService issues and validates HS256 bearer tokens. It holds no
// per-token state; a token stays valid until it expires.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenService creates a token service signing with secret.
func NewTokenService(secret []byte, ttl time.Duration, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for subject valid for the configured TTL.
func (s *TokenService) Issue(subject string) (*Token, error) {
	if subject == "" {
		return nil, fmt.Errorf("issue token: empty subject")
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        ulid.Make().String(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Token{
		Value:     signed,
		Subject:   subject,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate verifies the signature and expiry of token and returns its subject.
func (s *TokenService) Validate(token string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", ErrInvalidToken
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrExpiredToken
	default:
		return "", ErrInvalidToken
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
