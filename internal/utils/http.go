package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the body of every failed local API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON marshals data and writes it with statusCode and a JSON content
// type. If data cannot be marshaled the client gets 500 and the marshal
// error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		WriteError(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(body)
}

// WriteError answers with {"error": msg} so the GUI can parse failures the
// same way as results.
func WriteError(w http.ResponseWriter, msg string, statusCode int) {
	body, _ := json.Marshal(ErrorResponse{Error: msg})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	w.Write(body)
}
