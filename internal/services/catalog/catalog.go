package catalog

import (
	"context"
	"log/slog"
	"moviedeck/proj/internal/domain/filters"
	"moviedeck/proj/internal/domain/models"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type MovieLoader interface {
	LoadMovies(ctx context.Context) ([]models.Movie, error)
}

// Repository owns the in-memory catalog. The list is loaded once, on first
// use, and kept until Reload. Returned slices are shared and must be treated
// as read-only.
type Repository struct {
	log    *slog.Logger
	loader MovieLoader
	group  singleflight.Group

	mu         sync.RWMutex
	movies     []models.Movie
	loaded     bool
	generation uint64
}

func New(log *slog.Logger, loader MovieLoader) *Repository {
	return &Repository{
		log:    log,
		loader: loader,
	}
}

// LoadAll returns the memoised catalog, loading it if needed. A failed load
// is logged and yields an empty list; it is not memoised, so the next call
// tries again.
func (r *Repository) LoadAll(ctx context.Context) []models.Movie {
	const op = "catalog.Repository.LoadAll"
	log := r.log.With("op", op)
	r.mu.RLock()
	if r.loaded {
		movies := r.movies
		r.mu.RUnlock()
		return movies
	}
	generation := r.generation
	r.mu.RUnlock()

	v, err, _ := r.group.Do("movies", func() (any, error) {
		movies, err := r.loader.LoadMovies(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		if r.generation == generation {
			r.movies = movies
			r.loaded = true
		}
		r.mu.Unlock()
		log.Info("catalog loaded", "movies", len(movies))
		return movies, nil
	})
	if err != nil {
		log.Error("failed to load catalog", "errMsg", err.Error())
		return []models.Movie{}
	}
	return v.([]models.Movie)
}

// Reload drops the memoised catalog so the next access reads the assets again.
func (r *Repository) Reload() {
	r.mu.Lock()
	r.movies = nil
	r.loaded = false
	r.generation++
	r.mu.Unlock()
	r.group.Forget("movies")
	r.log.Info("catalog cache cleared", "op", "catalog.Repository.Reload")
}

func (r *Repository) Search(ctx context.Context, term string) []models.Movie {
	return Search(r.LoadAll(ctx), term)
}

func (r *Repository) ByGenre(ctx context.Context, genre string) []models.Movie {
	return ByGenre(r.LoadAll(ctx), genre)
}

func (r *Repository) ByYear(ctx context.Context, year int) []models.Movie {
	return ByYear(r.LoadAll(ctx), year)
}

func (r *Repository) ByDirector(ctx context.Context, name string) []models.Movie {
	return ByDirector(r.LoadAll(ctx), name)
}

func (r *Repository) TopRated(ctx context.Context, n int) []models.Movie {
	return TopRated(r.LoadAll(ctx), n)
}

func (r *Repository) AllGenres(ctx context.Context) []string {
	return AllGenres(r.LoadAll(ctx))
}

func (r *Repository) Filter(ctx context.Context, f filters.MovieFilter) []models.Movie {
	return Filter(r.LoadAll(ctx), f)
}

func (r *Repository) List(ctx context.Context, q ListQuery) []models.Movie {
	return List(r.LoadAll(ctx), q)
}

func (r *Repository) ByTitle(ctx context.Context, title string) (models.Movie, error) {
	const op = "catalog.Repository.ByTitle"
	movie, ok := ByTitle(r.LoadAll(ctx), title)
	if !ok {
		r.log.Info("movie not found", "op", op, "title", title)
		return models.Movie{}, ErrMovieNotFound
	}
	return movie, nil
}

func (r *Repository) ByID(ctx context.Context, id uuid.UUID) (models.Movie, error) {
	const op = "catalog.Repository.ByID"
	movie, ok := ByID(r.LoadAll(ctx), id)
	if !ok {
		r.log.Info("movie not found", "op", op, "id", id)
		return models.Movie{}, ErrMovieNotFound
	}
	return movie, nil
}
