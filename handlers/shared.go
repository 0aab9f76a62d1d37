package handlers

import (
	"encoding/json"
	"net/http"

	"nfl-pickem-go/logging"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("Failed to encode JSON response: %v", err)
	}
}

// errorResponse is the body for failed API requests
type errorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
