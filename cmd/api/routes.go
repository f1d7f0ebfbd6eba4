package main

import (
	"net/http"

	"cinelist/proj/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Paths are kept exactly as the original client expects them: list routes
// under /api/<kind>/..., comments and auth at the root.
func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)

	router.Get("/healthcheck", app.healthcheck)
	router.Post("/register", app.register)
	router.Post("/login", app.login)

	router.Route("/comments", func(r chi.Router) {
		// GET takes a movie id, PATCH/DELETE a comment id; chi requires a
		// single wildcard name per segment, so both go through {id}.
		r.Get("/{id}", app.listComments)
		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Post("/", app.createComment)
			r.Patch("/{id}", app.updateComment)
			r.Delete("/{id}", app.deleteComment)
		})
	})

	router.Route("/api", func(r chi.Router) {
		r.Use(app.requireAuthenticatedUser)
		r.Route("/favourite", app.listRoutes(models.ListKindFavourite))
		r.Route("/watchlater", app.listRoutes(models.ListKindWatchLater))
		r.Route("/account", func(r chi.Router) {
			r.Get("/", app.getAccount)
			r.Patch("/", app.updateAccount)
			r.Delete("/", app.deleteAccount)
		})
	})
	return router
}

func (app *Application) listRoutes(kind string) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/add", app.addListEntry(kind))
		r.Get("/list/{userId}", app.listEntries(kind))
		r.Delete("/{movieId}", app.removeListEntry(kind))
	}
}
