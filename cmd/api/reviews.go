package main

import (
	"errors"
	"moviedeck/proj/internal/services/reviews"
	"net/http"
)

// reviewError maps review store errors to responses.
func (app *Application) reviewError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviews.ErrInvalidRating):
		app.Http.UnprocessableEntity(w, r, map[string]string{"rating": reviews.ErrInvalidRating.Error()})
	case errors.Is(err, reviews.ErrInvalidEmoji):
		app.Http.UnprocessableEntity(w, r, map[string]string{"emoji": reviews.ErrInvalidEmoji.Error()})
	case errors.Is(err, reviews.ErrEmptyTitle):
		app.Http.BadRequest(w, r, err.Error())
	case errors.Is(err, reviews.ErrNothingToShare):
		app.Http.Conflict(w, r, err.Error())
	case errors.Is(err, reviews.ErrMailerNotConfigured):
		app.Http.ServiceUnavailable(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func (app *Application) getReview(w http.ResponseWriter, r *http.Request) {
	movie, ok := app.movieOr404(w, r)
	if !ok {
		return
	}
	app.Http.Ok(w, r, envelop{"review": app.Services.Reviews.GetReview(r.Context(), movie.Title)}, "")
}

func (app *Application) setRating(w http.ResponseWriter, r *http.Request) {
	movie, ok := app.movieOr404(w, r)
	if !ok {
		return
	}
	var body struct {
		Rating int `json:"rating" validate:"required,gte=1,lte=5"`
	}
	if !app.readBody(w, r, &body) {
		return
	}
	review, err := app.Services.Reviews.SetRating(r.Context(), movie.Title, body.Rating)
	if err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "Rating saved")
}

func (app *Application) toggleEmoji(w http.ResponseWriter, r *http.Request) {
	movie, ok := app.movieOr404(w, r)
	if !ok {
		return
	}
	var body struct {
		Emoji string `json:"emoji" validate:"required,max=32"`
	}
	if !app.readBody(w, r, &body) {
		return
	}
	review, err := app.Services.Reviews.ToggleEmoji(r.Context(), movie.Title, body.Emoji)
	if err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) toggleWatched(w http.ResponseWriter, r *http.Request) {
	movie, ok := app.movieOr404(w, r)
	if !ok {
		return
	}
	review, err := app.Services.Reviews.ToggleWatched(r.Context(), movie.Title)
	if err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

type shareRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

func (app *Application) shareReview(w http.ResponseWriter, r *http.Request) {
	movie, ok := app.movieOr404(w, r)
	if !ok {
		return
	}
	var body shareRequest
	if r.ContentLength != 0 && !app.readBody(w, r, &body) {
		return
	}
	text, err := app.Services.Reviews.Share(r.Context(), movie.Title, body.Email)
	if err != nil {
		app.reviewError(w, r, err)
		return
	}
	if body.Email != "" {
		app.Http.Accepted(w, r, envelop{"text": text}, "Review will be sent shortly")
		return
	}
	app.Http.Ok(w, r, envelop{"text": text}, "")
}

func (app *Application) listReviews(w http.ResponseWriter, r *http.Request) {
	var query limitQuery
	if !app.readQuery(w, r, &query) {
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": app.Services.Reviews.AllReviewedMovies(r.Context(), query.Limit)}, "")
}

func (app *Application) listWatched(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"watched": app.Services.Reviews.Watched(r.Context())}, "")
}
