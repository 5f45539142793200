package main

import (
	"context"
	"errors"
	"moviedeck/proj/internal/domain/filters"
	"moviedeck/proj/internal/domain/models"
	"moviedeck/proj/internal/services/catalog"
	"net/http"
	"strings"
)

// movieCard is a catalog entry as shown in lists, with the "reviewed" badge.
type movieCard struct {
	models.Movie
	IsReviewed bool `json:"isReviewed"`
}

func (app *Application) cards(ctx context.Context, movies []models.Movie) []movieCard {
	cards := make([]movieCard, 0, len(movies))
	for _, m := range movies {
		cards = append(cards, movieCard{Movie: m, IsReviewed: app.Services.Reviews.IsReviewed(ctx, m.Title)})
	}
	return cards
}

type listMoviesQuery struct {
	Term     string   `schema:"term" validate:"max=100"`
	Genres   []string `schema:"genres" validate:"max=20"`
	Director string   `schema:"director" validate:"max=100"`
	Year     int      `schema:"year" validate:"gte=0,lte=3000"`
	Sort     string   `schema:"sort" validate:"omitempty,sortbymoviefield"`
	Limit    int      `schema:"limit" validate:"gte=0,lte=100"`
}

// splitGenres accepts both repeated genres params and comma separated lists.
func splitGenres(raw []string) []string {
	var genres []string
	for _, item := range raw {
		for _, g := range strings.Split(item, ",") {
			if g = strings.TrimSpace(g); g != "" {
				genres = append(genres, g)
			}
		}
	}
	return genres
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	var query listMoviesQuery
	if !app.readQuery(w, r, &query) {
		return
	}
	limit := query.Limit
	if limit == 0 {
		limit = app.cfg.Search.DefaultLimit
	}
	movies := app.Services.Catalog.List(r.Context(), catalog.ListQuery{
		Filter:   filters.MovieFilter{Term: query.Term, Genres: splitGenres(query.Genres)},
		Director: query.Director,
		Year:     query.Year,
		Sort:     filters.Filters{Sort: query.Sort, SortSafelist: filters.MovieSortSafelist},
		Limit:    limit,
	})
	app.Http.Ok(w, r, envelop{"movies": app.cards(r.Context(), movies)}, "")
}

type searchQuery struct {
	Q string `schema:"q" validate:"max=100"`
}

func (app *Application) searchMovies(w http.ResponseWriter, r *http.Request) {
	var query searchQuery
	if !app.readQuery(w, r, &query) {
		return
	}
	movies := app.Services.Catalog.Search(r.Context(), query.Q)
	app.Http.Ok(w, r, envelop{"movies": app.cards(r.Context(), movies)}, "")
}

type limitQuery struct {
	Limit int `schema:"limit" validate:"gte=0,lte=100"`
}

func (app *Application) topRatedMovies(w http.ResponseWriter, r *http.Request) {
	var query limitQuery
	if !app.readQuery(w, r, &query) {
		return
	}
	movies := app.Services.Catalog.TopRated(r.Context(), query.Limit)
	app.Http.Ok(w, r, envelop{"movies": app.cards(r.Context(), movies)}, "")
}

func (app *Application) listGenres(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"genres": app.Services.Catalog.AllGenres(r.Context())}, "")
}

// movieOr404 resolves the {title} parameter to a catalog movie.
func (app *Application) movieOr404(w http.ResponseWriter, r *http.Request) (models.Movie, bool) {
	title, ok := app.extractTitleParam(w, r)
	if !ok {
		return models.Movie{}, false
	}
	movie, err := app.Services.Catalog.ByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, catalog.ErrMovieNotFound) {
			app.Http.NotFound(w, r, "movie not found")
			return models.Movie{}, false
		}
		app.Http.ServerError(w, r, err, "")
		return models.Movie{}, false
	}
	return movie, true
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := app.movieOr404(w, r)
	if !ok {
		return
	}
	poster, remote := movie.PosterSource()
	app.Http.Ok(w, r, envelop{
		"movie":  movie,
		"genres": movie.FormattedGenres(),
		"poster": envelop{"src": poster, "remote": remote},
		"review": app.Services.Reviews.GetReview(r.Context(), movie.Title),
	}, "")
}

func (app *Application) similarMovies(w http.ResponseWriter, r *http.Request) {
	var query limitQuery
	if !app.readQuery(w, r, &query) {
		return
	}
	movie, ok := app.movieOr404(w, r)
	if !ok {
		return
	}
	similar := app.Services.Recommend.For(r.Context(), movie, query.Limit)
	movies := make([]models.Movie, 0, len(similar))
	for _, s := range similar {
		movies = append(movies, s.ToMovie())
	}
	app.Http.Ok(w, r, envelop{"movies": movies}, "")
}
