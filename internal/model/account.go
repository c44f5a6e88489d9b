// Package model defines domain entities for the application.
package model

import "time"

// Account is a registered user. Email is the unique, immutable identity
// carried as the token subject.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	CreatedAt    time.Time `json:"createdAt"`
}
