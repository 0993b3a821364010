package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/travelbuddy/backend/internal/domain"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck — nothing useful to do if the client went away mid-write.
	json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error to its HTTP status and writes the JSON
// error body. Unknown errors become an opaque 500 so internal details never
// leak to the caller.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "trip not found"))
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("conflict", unwrapMessage(err)))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", unwrapMessage(err)))
	case errors.Is(err, domain.ErrGeneration):
		writeJSON(w, http.StatusBadGateway, errorBody("generation_failed", "itinerary generation failed"))
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody("internal", "internal server error"))
	}
}

// writeRequestError rejects a request before it reaches the service layer
// (e.g. missing or malformed body).
func writeRequestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", message))
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel
// error, e.g. "service.TripService.PlanTrip: validation error: duration
// must be positive" → "duration must be positive".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrConflict.Error() + ": ",
	} {
		if i := strings.Index(msg, sentinel); i >= 0 {
			return msg[i+len(sentinel):]
		}
	}
	return msg
}
