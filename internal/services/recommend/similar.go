package recommend

import (
	"cmp"
	"math/rand/v2"
	"moviedeck/proj/internal/domain/filters"
	"moviedeck/proj/internal/domain/models"
	"slices"
)

const DefaultLimit = 10

type scored struct {
	movie   models.SimilarMovie
	overlap int
}

// SimilarTo picks up to limit candidates sharing at least one genre with
// movie, ordered by the number of shared genres and then by rating. Ties keep
// candidate order. Candidates titled exactly like movie are skipped.
//
// When no candidate shares a genre the result is a random sample of the
// candidates drawn from rnd, so its order is not deterministic.
func SimilarTo(movie models.Movie, candidates []models.SimilarMovie, limit int, rnd *rand.Rand) []models.SimilarMovie {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(candidates) == 0 {
		return []models.SimilarMovie{}
	}
	matches := []scored{}
	for _, c := range candidates {
		if c.Title == movie.Title {
			continue
		}
		if n := genreOverlap(movie.Genre, c.Genre); n > 0 {
			matches = append(matches, scored{movie: c, overlap: n})
		}
	}
	if len(matches) == 0 {
		return randomSample(movie.Title, candidates, limit, rnd)
	}
	slices.SortStableFunc(matches, func(a, b scored) int {
		if c := cmp.Compare(b.overlap, a.overlap); c != 0 {
			return c
		}
		return cmp.Compare(b.movie.Rating, a.movie.Rating)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	result := make([]models.SimilarMovie, len(matches))
	for i, m := range matches {
		result[i] = m.movie
	}
	return result
}

// genreOverlap counts the distinct genres of b that also appear in a,
// ignoring case.
func genreOverlap(a, b []string) int {
	n := 0
	seen := make([]string, 0, len(b))
	for _, g := range b {
		if filters.HasGenre(seen, g) {
			continue
		}
		seen = append(seen, g)
		if filters.HasGenre(a, g) {
			n++
		}
	}
	return n
}

func randomSample(exclude string, candidates []models.SimilarMovie, limit int, rnd *rand.Rand) []models.SimilarMovie {
	pool := make([]models.SimilarMovie, 0, len(candidates))
	for _, c := range candidates {
		if c.Title != exclude {
			pool = append(pool, c)
		}
	}
	shuffle := rand.Shuffle
	if rnd != nil {
		shuffle = rnd.Shuffle
	}
	shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}
