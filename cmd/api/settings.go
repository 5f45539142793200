package main

import (
	"errors"
	"moviedeck/proj/internal/services/settings"
	"net/http"
)

func (app *Application) getUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	app.Http.Ok(w, r, envelop{
		"username":    app.Services.Settings.Username(ctx),
		"displayName": app.Services.Settings.DisplayName(ctx),
	}, "")
}

func (app *Application) setUsername(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required,max=64"`
	}
	if !app.readBody(w, r, &body) {
		return
	}
	username, err := app.Services.Settings.SetUsername(r.Context(), body.Username)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidUsername) {
			app.Http.UnprocessableEntity(w, r, map[string]string{"username": err.Error()})
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"username": username}, "Username saved")
}

func (app *Application) getTheme(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"isDarkTheme": app.Services.Settings.IsDarkTheme(r.Context())}, "")
}

func (app *Application) setTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IsDarkTheme *bool `json:"isDarkTheme" validate:"required"`
	}
	if !app.readBody(w, r, &body) {
		return
	}
	if err := app.Services.Settings.SetDarkTheme(r.Context(), *body.IsDarkTheme); err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"isDarkTheme": *body.IsDarkTheme}, "Theme saved")
}

func (app *Application) signOut(w http.ResponseWriter, r *http.Request) {
	if err := app.Services.Settings.SignOut(r.Context()); err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Signed out")
}

func (app *Application) clearCache(w http.ResponseWriter, r *http.Request) {
	if err := app.Services.Settings.ClearCache(r.Context()); err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, nil, "Cache cleared")
}
