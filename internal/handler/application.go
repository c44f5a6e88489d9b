package handler

import (
	"log/slog"
	"net/http"

	"github.com/jobtracker/jobtracker/internal/handler/dto"
	"github.com/jobtracker/jobtracker/internal/service"
)

// ApplicationHandler handles HTTP requests for application operations.
type ApplicationHandler struct {
	svc    *service.ApplicationService
	logger *slog.Logger
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(svc *service.ApplicationService, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, logger: logger}
}

// List handles GET /api/applications.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := subject(w, r)
	if !ok {
		return
	}

	apps, err := h.svc.List(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToApplicationListResponse(apps))
}

// Get handles GET /api/applications/{id}.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "application")
	if !ok {
		return
	}

	app, err := h.svc.Get(r.Context(), id, owner)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToApplicationResponse(app))
}

// Create handles POST /api/applications.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := subject(w, r)
	if !ok {
		return
	}

	var req dto.ApplicationRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	app, err := h.svc.Create(r.Context(), owner, req.ToInput())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("application_created", "application_id", app.ID, "status", app.Status)

	writeJSON(w, http.StatusCreated, dto.ToApplicationResponse(app))
}

// Update handles PUT /api/applications/{id}. The body replaces every
// mutable field.
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "application")
	if !ok {
		return
	}

	var req dto.ApplicationRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	app, err := h.svc.Update(r.Context(), id, owner, req.ToInput())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("application_updated", "application_id", app.ID, "status", app.Status)

	writeJSON(w, http.StatusOK, dto.ToApplicationResponse(app))
}

// Delete handles DELETE /api/applications/{id}.
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "application")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id, owner); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("application_deleted", "application_id", id)

	w.WriteHeader(http.StatusNoContent)
}
