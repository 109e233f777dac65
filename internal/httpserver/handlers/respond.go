package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/comments/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// writeJSON writes v with the given status. Encoding errors are only logged:
// the status line is already sent.
func writeJSON(w http.ResponseWriter, status int, v any, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil && log != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string, log logger.Logger) {
	writeJSON(w, status, errorResponse{Error: msg}, log)
}
