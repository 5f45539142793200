package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		app.Http.Response(w, r, nil, "", http.StatusMethodNotAllowed)
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.listMovies)
			r.Get("/search", app.searchMovies)
			r.Get("/top", app.topRatedMovies)
			r.Get("/genres", app.listGenres)
			r.Get("/live", app.liveSearch)
			r.Route("/{title}", func(r chi.Router) {
				r.Get("/", app.getMovie)
				r.Get("/similar", app.similarMovies)
				r.Route("/review", func(r chi.Router) {
					r.Get("/", app.getReview)
					r.Put("/rating", app.setRating)
					r.Post("/emojis", app.toggleEmoji)
					r.Post("/watched", app.toggleWatched)
					r.Post("/share", app.shareReview)
				})
			})
		})
		r.Get("/reviews", app.listReviews)
		r.Get("/watched", app.listWatched)
		r.Get("/dashboard", app.dashboard)
		r.Route("/settings", func(r chi.Router) {
			r.Get("/username", app.getUsername)
			r.Put("/username", app.setUsername)
			r.Get("/theme", app.getTheme)
			r.Put("/theme", app.setTheme)
			r.Post("/sign-out", app.signOut)
			r.Post("/clear-cache", app.clearCache)
		})
	})
	return router
}
