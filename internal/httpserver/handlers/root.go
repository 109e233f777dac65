package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/comments/internal/httpserver/deps"
)

const rootMessage = "Firebase Serverless REST API is running"

// Root answers the base URL so opening it in a browser shows something useful.
func Root(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, statusResponse{OK: true, Message: rootMessage}, d.Logger)
	}
}
