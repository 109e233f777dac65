package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/comments/internal/httpserver/deps"
)

const healthMessage = "API is running"

// Health is a liveness check with no external dependency.
func Health(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, statusResponse{OK: true, Message: healthMessage}, d.Logger)
	}
}
