package assets

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"moviedeck/proj/internal/domain/fields"
	"moviedeck/proj/internal/domain/models"
	"path"
	"sort"
)

//go:embed data/*.json
var sampleFS embed.FS

var ErrAssetLoad = errors.New("asset load failed")

const (
	DefaultMoviesFile  = "movies.json"
	DefaultSimilarFile = "similar_movies.json"
)

// SampleFS returns the dataset bundled with the binary.
func SampleFS() fs.FS {
	sub, err := fs.Sub(sampleFS, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Loader reads the movie catalog and the similar-movies dataset from a
// file system. Field names are matched case-insensitively.
type Loader struct {
	fsys        fs.FS
	moviesFile  string
	similarFile string
	ratingScale int
}

func New(fsys fs.FS, moviesFile, similarFile string, ratingScale int) *Loader {
	if moviesFile == "" {
		moviesFile = DefaultMoviesFile
	}
	if similarFile == "" {
		similarFile = DefaultSimilarFile
	}
	return &Loader{
		fsys:        fsys,
		moviesFile:  moviesFile,
		similarFile: similarFile,
		ratingScale: ratingScale,
	}
}

type rawMovie struct {
	Title      string              `json:"title"`
	Name       string              `json:"name"`
	Year       int                 `json:"year"`
	Genre      []string            `json:"genre"`
	Director   string              `json:"director"`
	Rating     *float64            `json:"rating"`
	ImDbRating *float64            `json:"imDbRating"`
	Emoji      string              `json:"emoji"`
	Poster     string              `json:"poster"`
	Storyline  string              `json:"storyline"`
	TrailerURL string              `json:"trailerUrl"`
	Cast       []models.CastMember `json:"cast"`
}

func (l *Loader) toMovie(r rawMovie) models.Movie {
	m := models.Movie{
		Title:      r.Title,
		Year:       r.Year,
		Genre:      r.Genre,
		Director:   r.Director,
		Rating:     l.rating(r),
		Emoji:      r.Emoji,
		Poster:     r.Poster,
		Storyline:  r.Storyline,
		TrailerURL: r.TrailerURL,
		Cast:       r.Cast,
	}
	if m.Title == "" {
		m.Title = r.Name
	}
	if m.Genre == nil {
		m.Genre = []string{}
	}
	m.ID = models.MovieID(m.Title, m.Year)
	return m
}

func (l *Loader) rating(r rawMovie) fields.Rating {
	switch {
	case r.Rating != nil:
		return fields.ScaleRating(*r.Rating, l.ratingScale)
	case r.ImDbRating != nil:
		// imDbRating is always on the 0-10 scale.
		return fields.ScaleRating(*r.ImDbRating, fields.ScaleTen)
	}
	return 0
}

// LoadMovies returns the catalog in dataset order. The movies file holds a
// JSON array; when it is missing every other *.json file in the root is read
// as a single movie object, in file name order.
func (l *Loader) LoadMovies(ctx context.Context) ([]models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fsys, l.moviesFile)
	switch {
	case err == nil:
		var raws []rawMovie
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, l.moviesFile, err)
		}
		movies := make([]models.Movie, 0, len(raws))
		for _, r := range raws {
			movies = append(movies, l.toMovie(r))
		}
		return movies, nil
	case errors.Is(err, fs.ErrNotExist):
		return l.loadPerFile(ctx)
	default:
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
}

func (l *Loader) loadPerFile(ctx context.Context) ([]models.Movie, error) {
	files, err := fs.Glob(l.fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	sort.Strings(files)
	var movies []models.Movie
	for _, file := range files {
		if path.Base(file) == l.similarFile {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(l.fsys, file)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, file, err)
		}
		var r rawMovie
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, file, err)
		}
		movies = append(movies, l.toMovie(r))
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("%w: no movie assets found", ErrAssetLoad)
	}
	return movies, nil
}

// LoadSimilar returns the recommendation candidates.
func (l *Loader) LoadSimilar(ctx context.Context) ([]models.SimilarMovie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fsys, l.similarFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	var raws []rawMovie
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, l.similarFile, err)
	}
	similar := make([]models.SimilarMovie, 0, len(raws))
	for _, r := range raws {
		m := l.toMovie(r)
		similar = append(similar, models.SimilarMovie{
			Title:     m.Title,
			Year:      m.Year,
			Genre:     m.Genre,
			Director:  m.Director,
			Rating:    m.Rating,
			Emoji:     m.Emoji,
			Poster:    m.Poster,
			Storyline: m.Storyline,
		})
	}
	return similar, nil
}
