package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/innocentteam/restaurant/internal/models"
)

// envelope is the common response shape: message plus optional payload
type envelope struct {
	Message  string      `json:"message"`
	Response interface{} `json:"response,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, message string, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(envelope{Message: message, Response: payload}); err != nil {
		return
	}
}

// writeError translates a workflow error to its HTTP status. Unknown error
// shapes fall through to a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidID),
		errors.Is(err, models.ErrInvalidQuantity):
		writeJSON(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, models.ErrAccountNotFound),
		errors.Is(err, models.ErrPendingNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, models.ErrAccountExists),
		errors.Is(err, models.ErrInvalidOTP),
		errors.Is(err, models.ErrInvalidPassword),
		errors.Is(err, models.ErrProductUnavailable):
		writeJSON(w, http.StatusConflict, err.Error(), nil)
	default:
		writeJSON(w, http.StatusInternalServerError, "internal error", nil)
	}
}
