package catalog

import (
	"cmp"
	"moviedeck/proj/internal/domain/filters"
	"moviedeck/proj/internal/domain/models"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const DefaultTopRated = 10

// The functions below are pure queries over a movie list. They never modify
// their input and always return a fresh slice.

// Search matches term against the title, the director and every genre.
// A blank term returns the whole list in its original order.
func Search(movies []models.Movie, term string) []models.Movie {
	term = strings.TrimSpace(term)
	if term == "" {
		return clone(movies)
	}
	return where(movies, func(m models.Movie) bool {
		if filters.ContainsFold(m.Title, term) || filters.ContainsFold(m.Director, term) {
			return true
		}
		for _, g := range m.Genre {
			if filters.ContainsFold(g, term) {
				return true
			}
		}
		return false
	})
}

func ByGenre(movies []models.Movie, genre string) []models.Movie {
	return where(movies, func(m models.Movie) bool {
		return filters.HasGenre(m.Genre, genre)
	})
}

func ByYear(movies []models.Movie, year int) []models.Movie {
	return where(movies, func(m models.Movie) bool { return m.Year == year })
}

func ByDirector(movies []models.Movie, name string) []models.Movie {
	return where(movies, func(m models.Movie) bool { return strings.EqualFold(m.Director, name) })
}

// Filter applies the search screen filter.
func Filter(movies []models.Movie, f filters.MovieFilter) []models.Movie {
	return where(movies, f.Match)
}

// TopRated sorts by rating, highest first, keeping load order on ties, and
// keeps the first n entries. n <= 0 means DefaultTopRated.
func TopRated(movies []models.Movie, n int) []models.Movie {
	if n <= 0 {
		n = DefaultTopRated
	}
	sorted := clone(movies)
	slices.SortStableFunc(sorted, func(a, b models.Movie) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// AllGenres returns the distinct genres, deduplicated case-sensitively and
// sorted lexicographically.
func AllGenres(movies []models.Movie) []string {
	seen := make(map[string]struct{})
	genres := []string{}
	for _, m := range movies {
		for _, g := range m.Genre {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}
	slices.Sort(genres)
	return genres
}

// ByTitle returns the first movie whose title equals title, ignoring case.
func ByTitle(movies []models.Movie, title string) (models.Movie, bool) {
	for _, m := range movies {
		if strings.EqualFold(m.Title, title) {
			return m, true
		}
	}
	return models.Movie{}, false
}

func ByID(movies []models.Movie, id uuid.UUID) (models.Movie, bool) {
	for _, m := range movies {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

// Sort orders movies by a safelisted column. An empty sort keeps the input
// order. The sort is stable.
func Sort(movies []models.Movie, f filters.Filters) []models.Movie {
	sorted := clone(movies)
	if f.Sort == "" {
		return sorted
	}
	column := f.SortColumn()
	desc := f.SortDirection() == filters.DescSort
	slices.SortStableFunc(sorted, func(a, b models.Movie) int {
		var c int
		switch column {
		case "title":
			c = cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case "year":
			c = cmp.Compare(a.Year, b.Year)
		case "rating":
			c = cmp.Compare(a.Rating, b.Rating)
		case "director":
			c = cmp.Compare(strings.ToLower(a.Director), strings.ToLower(b.Director))
		}
		if desc {
			return -c
		}
		return c
	})
	return sorted
}

// ListQuery combines every listing option of the movies endpoint.
type ListQuery struct {
	Filter   filters.MovieFilter
	Director string
	Year     int
	Sort     filters.Filters
	Limit    int
}

func List(movies []models.Movie, q ListQuery) []models.Movie {
	result := Filter(movies, q.Filter)
	if q.Director != "" {
		result = ByDirector(result, q.Director)
	}
	if q.Year != 0 {
		result = ByYear(result, q.Year)
	}
	result = Sort(result, q.Sort)
	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result
}

func where(movies []models.Movie, keep func(models.Movie) bool) []models.Movie {
	result := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if keep(m) {
			result = append(result, m)
		}
	}
	return result
}

// clone copies movies into a non-nil slice so empty results encode as [].
func clone(movies []models.Movie) []models.Movie {
	return append(make([]models.Movie, 0, len(movies)), movies...)
}
