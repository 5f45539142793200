package filters

import (
	"errors"
	"moviedeck/proj/internal/domain/models"
	"strings"
)

const (
	AscSort  = "ASC"
	DescSort = "DESC"
)

// MovieSortSafelist lists the columns a movie listing may be sorted by.
var MovieSortSafelist = []string{"title", "year", "rating", "director"}

type Filters struct {
	Sort         string
	SortSafelist []string
}

func (f *Filters) SortColumn() string {
	s := strings.TrimPrefix(f.Sort, "-")
	for _, safeValue := range f.SortSafelist {
		if strings.EqualFold(s, safeValue) {
			return strings.ToLower(s)
		}
	}
	panic(errors.New("Unknown sort column: " + f.Sort))
}

func (f *Filters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return DescSort
	}
	return AscSort
}

// MovieFilter is the search screen filter: a title substring and a
// multi-select set of genres. Both comparisons ignore case.
type MovieFilter struct {
	Term   string
	Genres []string
}

// Match reports whether the movie passes the filter. An empty term and an
// empty genre selection each match everything.
func (f MovieFilter) Match(m models.Movie) bool {
	term := strings.TrimSpace(f.Term)
	if term != "" && !ContainsFold(m.Title, term) {
		return false
	}
	if len(f.Genres) == 0 {
		return true
	}
	for _, g := range m.Genre {
		if HasGenre(f.Genres, g) {
			return true
		}
	}
	return false
}

// ContainsFold is a case-insensitive strings.Contains.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// HasGenre reports whether genre is in genres, ignoring case.
func HasGenre(genres []string, genre string) bool {
	for _, g := range genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}
