package dashboard

import (
	"context"
	"log/slog"
	"moviedeck/proj/internal/domain/fields"
	"moviedeck/proj/internal/domain/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubCatalog struct {
	movies []models.Movie
	panics bool
}

func (s stubCatalog) LoadAll(context.Context) []models.Movie {
	if s.panics {
		panic("assets unreadable")
	}
	return s.movies
}

type stubReviews struct {
	watched []string
	count   int
	recent  []models.ReviewedMovie
}

func (s stubReviews) Watched(context.Context) []string { return s.watched }
func (s stubReviews) ReviewCount(context.Context) int  { return s.count }
func (s stubReviews) AllReviewedMovies(_ context.Context, limit int) []models.ReviewedMovie {
	if len(s.recent) > limit {
		return s.recent[:limit]
	}
	return s.recent
}

type stubUser string

func (s stubUser) DisplayName(context.Context) string { return string(s) }

func movies(ratings ...fields.Rating) []models.Movie {
	res := make([]models.Movie, 0, len(ratings))
	for i, r := range ratings {
		res = append(res, models.Movie{Title: string(rune('A' + i)), Rating: r})
	}
	return res
}

func TestCompose(t *testing.T) {
	d := Compose(movies(8.5, 8.2, 7.0), []string{"A", "B"}, 1)
	assert.Equal(t, 3, d.TotalMovies)
	assert.Equal(t, 2, d.WatchedCount)
	assert.Equal(t, 1, d.ReviewCount)
	assert.Equal(t, fields.Rating(7.9), d.AverageRating)
	assert.Equal(t, "A", d.TopRated[0].Title)
	assert.Empty(t, d.RecentReviews)
}

func TestComposeEmpty(t *testing.T) {
	d := Compose(nil, nil, 0)
	assert.Equal(t, models.Dashboard{TopRated: []models.Movie{}, RecentReviews: []models.ReviewedMovie{}}, d)
}

func TestComposeTopRatedLimit(t *testing.T) {
	ratings := make([]fields.Rating, 0, 12)
	for i := range 12 {
		ratings = append(ratings, fields.Rating(i))
	}
	d := Compose(movies(ratings...), nil, 0)
	assert.Len(t, d.TopRated, TopRatedLimit)
	assert.Equal(t, fields.Rating(5.5), d.AverageRating)
}

func TestSummary(t *testing.T) {
	recent := make([]models.ReviewedMovie, 7)
	a := New(
		slog.Default(),
		stubCatalog{movies: movies(9, 8)},
		stubReviews{watched: []string{"A"}, count: 2, recent: recent},
		stubUser("Ann"),
	)
	d := a.Summary(context.Background())
	assert.Equal(t, "Ann", d.Username)
	assert.Equal(t, 2, d.TotalMovies)
	assert.Equal(t, 1, d.WatchedCount)
	assert.Equal(t, 2, d.ReviewCount)
	assert.Equal(t, fields.Rating(8.5), d.AverageRating)
	assert.Len(t, d.RecentReviews, RecentReviewsLimit)
}

func TestSummaryDegradesGracefully(t *testing.T) {
	a := New(
		slog.Default(),
		stubCatalog{panics: true},
		stubReviews{watched: []string{"A", "B"}, count: 1},
		stubUser("Guest"),
	)
	d := a.Summary(context.Background())
	assert.Equal(t, 0, d.TotalMovies)
	assert.Equal(t, fields.Rating(0), d.AverageRating)
	assert.Empty(t, d.TopRated)
	assert.Equal(t, 2, d.WatchedCount)
	assert.Equal(t, 1, d.ReviewCount)
	assert.Equal(t, "Guest", d.Username)
}
