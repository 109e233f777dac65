package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/comments/internal/httpserver/deps"
	"github.com/MrSnakeDoc/comments/internal/web"
)

func init() { Register(registerWeb) }

func registerWeb(r chi.Router, d deps.Deps) {
	if !d.ServeWeb {
		return
	}
	r.Get("/app", http.RedirectHandler("/app/", http.StatusMovedPermanently).ServeHTTP)
	r.Handle("/app/*", http.StripPrefix("/app", web.Handler()))
}
