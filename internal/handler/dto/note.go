package dto

import (
	"time"

	"github.com/jobtracker/jobtracker/internal/model"
)

// NoteRequest is the body of note create and update.
type NoteRequest struct {
	Content string `json:"content" validate:"notblank,nonul"`
}

// NoteResponse represents a note in API responses.
type NoteResponse struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"applicationId"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToNoteResponse converts a model.Note to NoteResponse.
func ToNoteResponse(n *model.Note) NoteResponse {
	return NoteResponse{
		ID:            n.ID,
		ApplicationID: n.ApplicationID,
		Content:       n.Content,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

// ToNoteListResponse converts notes, never returning nil.
func ToNoteListResponse(notes []*model.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, ToNoteResponse(n))
	}
	return out
}
