// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/jobtracker/jobtracker/internal/model"
	"github.com/jobtracker/jobtracker/internal/service"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"notblank,max=255,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"notblank,max=255,nonul"`
}

// ToInput converts the request to service input.
func (r RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
	}
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"notblank,nonul"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse represents a registered account. The password hash is
// never part of it.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToAccountResponse converts a model.Account to AccountResponse.
func ToAccountResponse(a *model.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName,
		CreatedAt: a.CreatedAt,
	}
}

// LoginResponse carries the bearer token issued on login.
type LoginResponse struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// ToLoginResponse converts a service.LoginResult to LoginResponse.
func ToLoginResponse(r *service.LoginResult) LoginResponse {
	return LoginResponse{
		Token:    r.Token,
		Email:    r.Email,
		FullName: r.FullName,
	}
}
