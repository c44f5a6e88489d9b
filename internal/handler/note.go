package handler

import (
	"log/slog"
	"net/http"

	"github.com/jobtracker/jobtracker/internal/handler/dto"
	"github.com/jobtracker/jobtracker/internal/service"
)

// NoteHandler handles the notes nested under an application.
type NoteHandler struct {
	svc    *service.NoteService
	logger *slog.Logger
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(svc *service.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{svc: svc, logger: logger}
}

// noteScope resolves the caller and the ids in
// /api/applications/{id}/notes[/{noteId}]. withNote reports whether noteId
// is part of the route.
func noteScope(w http.ResponseWriter, r *http.Request, withNote bool) (owner string, appID, noteID int64, ok bool) {
	if owner, ok = subject(w, r); !ok {
		return
	}
	if appID, ok = pathID(w, r, "id", "application"); !ok {
		return
	}
	if withNote {
		noteID, ok = pathID(w, r, "noteId", "note")
	}
	return
}

// List handles GET /api/applications/{id}/notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, appID, _, ok := noteScope(w, r, false)
	if !ok {
		return
	}

	notes, err := h.svc.List(r.Context(), appID, owner)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNoteListResponse(notes))
}

// Get handles GET /api/applications/{id}/notes/{noteId}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, appID, noteID, ok := noteScope(w, r, true)
	if !ok {
		return
	}

	note, err := h.svc.Get(r.Context(), appID, noteID, owner)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToNoteResponse(note))
}

// Create handles POST /api/applications/{id}/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, appID, _, ok := noteScope(w, r, false)
	if !ok {
		return
	}

	var req dto.NoteRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	note, err := h.svc.Create(r.Context(), appID, owner, req.Content)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("note_created", "note_id", note.ID, "application_id", appID)

	writeJSON(w, http.StatusCreated, dto.ToNoteResponse(note))
}

// Update handles PUT /api/applications/{id}/notes/{noteId}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, appID, noteID, ok := noteScope(w, r, true)
	if !ok {
		return
	}

	var req dto.NoteRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	note, err := h.svc.Update(r.Context(), appID, noteID, owner, req.Content)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("note_updated", "note_id", note.ID, "application_id", appID)

	writeJSON(w, http.StatusOK, dto.ToNoteResponse(note))
}

// Delete handles DELETE /api/applications/{id}/notes/{noteId}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, appID, noteID, ok := noteScope(w, r, true)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), appID, noteID, owner); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("note_deleted", "note_id", noteID, "application_id", appID)

	w.WriteHeader(http.StatusNoContent)
}
