// Package handler provides HTTP request handlers and the API router.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jobtracker/jobtracker/internal/auth"
)

// errorBody is the JSON shape of every non-validation error.
type errorBody struct {
	Error string `json:"error"`
}

// NotFound handles unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// pathID parses a numeric chi URL parameter. It writes a 400 and returns
// false when the value is not an integer.
func pathID(w http.ResponseWriter, r *http.Request, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+label+" id")
		return 0, false
	}
	return id, true
}

// subject returns the authenticated account email placed in the context by
// middleware.Auth. Routes without that middleware get a 401.
func subject(w http.ResponseWriter, r *http.Request) (string, bool) {
	s, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return "", false
	}
	return s, true
}
