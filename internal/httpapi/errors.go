package httpapi

import (
	"encoding/json"
	"net/http"
)

// APIError is the flat error envelope the UI expects. RawBody echoes the
// offending request body on parse failures so callers can see what the
// server actually received.
type APIError struct {
	Error   string `json:"error"`
	RawBody string `json:"rawBody,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, APIError{Error: message})
}
