package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kiwari-pos/floor/internal/service"
	"github.com/kiwari-pos/floor/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps store and service errors to HTTP responses.
// Unknown errors are logged with op and reported as 500.
func writeServiceError(w http.ResponseWriter, err error, op string) {
	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case isConflict(err):
		writeError(w, http.StatusConflict, err.Error())
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrOrderNotFound) ||
		errors.Is(err, store.ErrTableNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, store.ErrInvalidTransition) ||
		errors.Is(err, store.ErrTableAlreadyReserved) ||
		errors.Is(err, store.ErrOrderNotPayable) ||
		errors.Is(err, store.ErrOrderChanged)
}

// isValidationError checks if the error is a known validation error
// that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, store.ErrInvalidInitialStatus) ||
		errors.Is(err, store.ErrInvalidPartySize) ||
		errors.Is(err, service.ErrInvalidPaymentMethod) ||
		errors.Is(err, service.ErrInvalidTip) ||
		errors.Is(err, service.ErrInsufficientAmount)
}
