// Package handler exposes the conversation workflow over HTTP. Handlers
// follow the constructor-returning-http.HandlerFunc convention and map
// service errors onto status codes; all bodies are JSON.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorBody{Error: kind, Message: message})
}
