// internal/handlers/response.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
)

const maxBodyBytes = 1 << 20

// MsgInvalidBody is returned when a request body is not the expected JSON
const MsgInvalidBody = "Invalid request body"

// MsgInternal hides infrastructure failures from the desk
const MsgInternal = "Internal server error"

// responder carries the JSON helpers shared by every handler
type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger, name string) responder {
	return responder{logger: logger.With(slog.String("handler", name))}
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", "err", err)
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the error categories of the desk to status codes
func (h responder) respondServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case domain.IsInputError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "failed to "+action, "err", err)
		h.respondError(w, http.StatusInternalServerError, MsgInternal)
	}
}

// decodeJSON reads a single JSON object from the request body
func (h responder) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		h.respondError(w, http.StatusBadRequest, MsgInvalidBody)
		return false
	}
	return true
}
