package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"moviedeck/proj/internal/domain/fields"
	"moviedeck/proj/internal/domain/models"
	"moviedeck/proj/internal/services/catalog"

	"golang.org/x/sync/errgroup"
)

const (
	TopRatedLimit      = 10
	RecentReviewsLimit = 5
)

type CatalogReader interface {
	LoadAll(ctx context.Context) []models.Movie
}

type ReviewReader interface {
	Watched(ctx context.Context) []string
	ReviewCount(ctx context.Context) int
	AllReviewedMovies(ctx context.Context, limit int) []models.ReviewedMovie
}

type UserReader interface {
	DisplayName(ctx context.Context) string
}

// Aggregator builds the home screen summary. It keeps no state of its own.
type Aggregator struct {
	log      *slog.Logger
	catalog  CatalogReader
	reviews  ReviewReader
	settings UserReader
}

func New(log *slog.Logger, catalog CatalogReader, reviews ReviewReader, settings UserReader) *Aggregator {
	return &Aggregator{log: log, catalog: catalog, reviews: reviews, settings: settings}
}

// Compose derives the dashboard from already loaded inputs.
func Compose(movies []models.Movie, watched []string, reviewCount int) models.Dashboard {
	return models.Dashboard{
		TotalMovies:   len(movies),
		WatchedCount:  len(watched),
		ReviewCount:   reviewCount,
		AverageRating: averageRating(movies),
		TopRated:      catalog.TopRated(movies, TopRatedLimit),
		RecentReviews: []models.ReviewedMovie{},
	}
}

func averageRating(movies []models.Movie) fields.Rating {
	if len(movies) == 0 {
		return 0
	}
	var sum float64
	for _, m := range movies {
		sum += float64(m.Rating)
	}
	return fields.Rating(fields.Rating(sum / float64(len(movies))).Rounded())
}

// guard turns a panic in one of the reads into an error so a single broken
// source leaves its part of the summary empty.
func guard(log *slog.Logger, part string, read func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s: %v", part, r)
				log.Error("dashboard read failed", "part", part, "errMsg", err.Error())
			}
		}()
		read()
		return nil
	}
}

// Summary reads every source concurrently. Failed sources contribute zero
// values; the summary itself never fails.
func (a *Aggregator) Summary(ctx context.Context) models.Dashboard {
	const op = "dashboard.Aggregator.Summary"
	log := a.log.With("op", op)

	var (
		movies      []models.Movie
		watched     []string
		reviewCount int
		recent      []models.ReviewedMovie
		username    string
	)
	var g errgroup.Group
	g.Go(guard(log, "catalog", func() { movies = a.catalog.LoadAll(ctx) }))
	g.Go(guard(log, "watched", func() { watched = a.reviews.Watched(ctx) }))
	g.Go(guard(log, "reviewCount", func() { reviewCount = a.reviews.ReviewCount(ctx) }))
	g.Go(guard(log, "recentReviews", func() { recent = a.reviews.AllReviewedMovies(ctx, RecentReviewsLimit) }))
	g.Go(guard(log, "username", func() { username = a.settings.DisplayName(ctx) }))
	if err := g.Wait(); err != nil {
		log.Warn("dashboard is partial", "errMsg", err.Error())
	}

	d := Compose(movies, watched, reviewCount)
	if recent != nil {
		d.RecentReviews = recent
	}
	d.Username = username
	return d
}
