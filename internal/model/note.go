package model

import "time"

// Note is free-form text attached to an Application.
type Note struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"applicationId"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
