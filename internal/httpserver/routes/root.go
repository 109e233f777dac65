package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/comments/internal/httpserver/deps"
	"github.com/MrSnakeDoc/comments/internal/httpserver/handlers"
)

func init() { Register(registerRoot) }

func registerRoot(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Root(d))
	r.Get("/health", handlers.Health(d))
}
