package recommend

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"moviedeck/proj/internal/domain/models"
	"sync"

	"golang.org/x/sync/singleflight"
)

type SimilarLoader interface {
	LoadSimilar(ctx context.Context) ([]models.SimilarMovie, error)
}

// Recommender serves "more like this" lists from the similar-movies dataset,
// which is loaded once and kept until Reload.
type Recommender struct {
	log    *slog.Logger
	loader SimilarLoader
	group  singleflight.Group

	mu      sync.Mutex
	rnd     *rand.Rand
	similar []models.SimilarMovie
	loaded  bool
	gen     uint64
}

func New(log *slog.Logger, loader SimilarLoader, rnd *rand.Rand) *Recommender {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Recommender{log: log, loader: loader, rnd: rnd}
}

func (r *Recommender) candidates(ctx context.Context) []models.SimilarMovie {
	const op = "recommend.Recommender.candidates"
	r.mu.Lock()
	if r.loaded {
		similar := r.similar
		r.mu.Unlock()
		return similar
	}
	gen := r.gen
	r.mu.Unlock()

	v, err, _ := r.group.Do("similar", func() (any, error) {
		return r.loader.LoadSimilar(context.WithoutCancel(ctx))
	})
	if err != nil {
		r.log.Error("failed to load similar movies", "op", op, "errMsg", err.Error())
		return []models.SimilarMovie{}
	}
	similar := v.([]models.SimilarMovie)
	r.mu.Lock()
	if r.gen == gen {
		r.similar, r.loaded = similar, true
	}
	r.mu.Unlock()
	return similar
}

// For returns up to limit recommendations for movie. A failed dataset load
// yields an empty list.
func (r *Recommender) For(ctx context.Context, movie models.Movie, limit int) []models.SimilarMovie {
	candidates := r.candidates(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()
	return SimilarTo(movie, candidates, limit, r.rnd)
}

// Reload drops the loaded dataset.
func (r *Recommender) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.similar, r.loaded = nil, false
	r.gen++
	r.group.Forget("similar")
}
