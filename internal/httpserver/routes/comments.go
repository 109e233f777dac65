package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/comments/internal/httpserver/deps"
	"github.com/MrSnakeDoc/comments/internal/httpserver/handlers"
)

func init() { Register(registerComments) }

func registerComments(r chi.Router, d deps.Deps) {
	r.Route("/comments", func(r chi.Router) {
		r.Get("/", handlers.ListComments(d))
		r.Post("/", handlers.CreateComment(d))
	})
}
