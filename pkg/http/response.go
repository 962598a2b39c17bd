package http

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse writes a JSON error body with the given status code.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
