package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jobtracker/jobtracker/internal/auth"
	"github.com/jobtracker/jobtracker/internal/middleware"
	"github.com/jobtracker/jobtracker/internal/service"
)

// Client-facing messages.
const (
	msgMalformedBody      = "Request body is missing or malformed"
	msgBodyTooLarge       = "Request body too large"
	msgDuplicateEmail     = "Email already registered"
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidToken       = "Invalid or expired token"
	msgInternal           = "Internal server error"
)

// writeServiceError maps service errors to HTTP responses. It is the only
// place where error kinds become status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, validationErr.Fields)
	case errors.As(err, &notFoundErr):
		writeError(w, http.StatusNotFound, notFoundErr.Error())
	case errors.Is(err, service.ErrApplicationNotFound):
		writeError(w, http.StatusNotFound, "Application not found")
	case errors.Is(err, service.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, "Note not found")
	case errors.Is(err, service.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, msgDuplicateEmail)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
	default:
		logger.Error("request failed",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.Method+" "+r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// decodeRequest reads a JSON body into dst and validates it. It writes the
// error response itself and returns false on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		} else {
			// Empty body, bad syntax, wrong types and unparseable dates.
			writeError(w, http.StatusBadRequest, msgMalformedBody)
		}
		return false
	}

	if err := validateRequest(dst); err != nil {
		writeServiceError(w, r, logger, err)
		return false
	}
	return true
}
