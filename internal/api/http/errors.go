package http

import (
	"errors"
	"net/http"

	"github.com/vitalog/vitalog/internal/api/service"
	"github.com/vitalog/vitalog/internal/api/store"
	"github.com/vitalog/vitalog/pkg/httpx"
	"github.com/vitalog/vitalog/pkg/slogx"
)

// envelope is the uniform response shape. Success responses carry data and
// an optional message; failures carry error and optional details.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeData(w http.ResponseWriter, code int, data any) {
	httpx.WriteJSON(w, code, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, code int, data any, message string) {
	httpx.WriteJSON(w, code, envelope{Success: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, code int, msg string, details any) {
	httpx.WriteJSON(w, code, envelope{Success: false, Error: msg, Details: details})
}

// errorResponder maps service and store sentinels onto HTTP statuses.
// Handlers embed it so the response behavior is wired at construction
// rather than read from package state. When exposeDetails is set, 500
// responses include the underlying error message.
type errorResponder struct {
	exposeDetails bool
}

// serviceError writes the HTTP response for a service-layer error.
// Anything unrecognized is a 500 with a generic message; the cause goes to
// the log, and to the client only when details are exposed.
func (e errorResponder) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials", nil)
	case errors.Is(err, service.ErrInvalidRefresh):
		writeError(w, http.StatusUnauthorized, "Invalid refresh token", nil)
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusUnauthorized, "User not found", nil)
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusConflict, "User with this email already exists", nil)
	case errors.Is(err, store.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Record already exists", nil)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Record not found", nil)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err,
			"method", r.Method, "path", r.URL.Path)
		var details any
		if e.exposeDetails {
			details = err.Error()
		}
		writeError(w, http.StatusInternalServerError, "Internal server error", details)
	}
}
