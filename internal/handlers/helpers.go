package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"eduaid-backend/internal/models"
	"eduaid-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

// decodeJSON reads the request body into dst, normalizing malformed or
// missing JSON to a client error.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return &services.ValidationError{Message: "No JSON data provided"}
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &services.ValidationError{Message: "No JSON data provided"}
	}
	return nil
}

// handleServiceError maps the service error taxonomy to HTTP statuses.
// Anything outside the taxonomy is logged with full detail and surfaced as a
// generic 500 using the endpoint's fallback message; internals never leak.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch e := err.(type) {
	case *services.ValidationError:
		log.Printf("Validation error on %s: %s", r.URL.Path, e.Message)
		writeJSON(w, http.StatusBadRequest, errorResp(e.Message))
	case *services.UnavailableError:
		writeJSON(w, http.StatusServiceUnavailable, errorResp(e.Message))
	case *services.TimeoutError:
		writeJSON(w, http.StatusGatewayTimeout, errorResp(e.Message))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp(e.Message))
	default:
		log.Printf("Error on %s: %v", r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorResp(fallback))
	}
}
