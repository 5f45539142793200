package main

import (
	"moviedeck/proj/internal/domain/models"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moviesData struct {
	Movies []movieCard `json:"movies"`
}

func TestHealthcheck(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	rec := doRequest(t, app.routes(), http.MethodGet, "/api/v1/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"available"`)
	assert.Contains(t, rec.Body.String(), `"storage":"memory"`)
}

func TestListMovies(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	router := app.routes()

	testCases := []struct {
		name     string
		target   string
		expected []string
	}{
		{"all in dataset order", "/api/v1/movies", []string{"Dune", "Up", "Arrival", "Spider-Man: Into the Spider-Verse"}},
		{"genre filter sorted by rating", "/api/v1/movies?genres=sci-fi&sort=-rating", []string{"Dune", "Arrival"}},
		{"comma separated genres", "/api/v1/movies?genres=Drama,Family&sort=title", []string{"Arrival", "Up"}},
		{"title term", "/api/v1/movies?term=SPIDER", []string{"Spider-Man: Into the Spider-Verse"}},
		{"term does not match director", "/api/v1/movies?term=villeneuve", []string{}},
		{"director and year", "/api/v1/movies?director=denis%20villeneuve&year=2016", []string{"Arrival"}},
		{"limit", "/api/v1/movies?sort=year&limit=2", []string{"Up", "Arrival"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tc.target, "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tc.expected, cardTitles(decode[moviesData](t, rec).Data.Movies))
		})
	}
}

func TestListMoviesValidation(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	router := app.routes()

	rec := doRequest(t, router, http.MethodGet, "/api/v1/movies?sort=budget", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decode[struct {
		Errors map[string]string `json:"errors"`
	}](t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Data.Errors, "sort")

	rec = doRequest(t, router, http.MethodGet, "/api/v1/movies?limit=lots", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/movies?limit=500", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSearchTopAndGenres(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	router := app.routes()

	rec := doRequest(t, router, http.MethodGet, "/api/v1/movies/search?q=villeneuve", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Dune", "Arrival"}, cardTitles(decode[moviesData](t, rec).Data.Movies))

	rec = doRequest(t, router, http.MethodGet, "/api/v1/movies/search?q=%20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[moviesData](t, rec).Data.Movies, 4)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/movies/top?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Spider-Man: Into the Spider-Verse", "Up"}, cardTitles(decode[moviesData](t, rec).Data.Movies))

	rec = doRequest(t, router, http.MethodGet, "/api/v1/movies/genres", "")
	require.Equal(t, http.StatusOK, rec.Code)
	genres := decode[struct {
		Genres []string `json:"genres"`
	}](t, rec).Data.Genres
	assert.Equal(t, []string{"Action", "Adventure", "Animation", "Drama", "Family", "Sci-Fi"}, genres)
}

func TestGetMovie(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	router := app.routes()

	type movieData struct {
		Movie  models.Movie  `json:"movie"`
		Genres string        `json:"genres"`
		Review models.Review `json:"review"`
		Poster struct {
			Src    string `json:"src"`
			Remote bool   `json:"remote"`
		} `json:"poster"`
	}

	rec := doRequest(t, router, http.MethodGet, "/api/v1/movies/dune", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode[movieData](t, rec).Data
	assert.Equal(t, "Dune", data.Movie.Title)
	assert.Equal(t, models.MovieID("Dune", 2021), data.Movie.ID)
	assert.Equal(t, "Movie | Sci-Fi | Adventure", data.Genres)
	assert.True(t, data.Poster.Remote)
	assert.Equal(t, 0, data.Review.Rating)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/movies/Spider-Man:%20Into%20the%20Spider-Verse", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data = decode[movieData](t, rec).Data
	assert.Equal(t, 2018, data.Movie.Year)
	assert.False(t, data.Poster.Remote)
	assert.Equal(t, "spider-man_into_the_spider-verse.jpg", data.Poster.Src)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/movies/Solaris", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimilarMovies(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	router := app.routes()

	rec := doRequest(t, router, http.MethodGet, "/api/v1/movies/Up/similar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	movies := decode[struct {
		Movies []models.Movie `json:"movies"`
	}](t, rec).Data.Movies
	require.Len(t, movies, 1)
	assert.Equal(t, "Coco", movies[0].Title)
	assert.Equal(t, models.UnknownDirector, movies[0].Director)
	assert.Equal(t, models.NoStoryline, movies[0].Storyline)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/movies/Arrival/similar?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Interstellar")

	rec = doRequest(t, router, http.MethodGet, "/api/v1/movies/Solaris/similar", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	app := NewTestApplication(t, nil, nil)
	rec := doRequest(t, app.routes(), http.MethodGet, "/api/v2/movies", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = doRequest(t, app.routes(), http.MethodDelete, "/api/v1/movies/Dune", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
