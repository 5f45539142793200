package assets

import (
	"context"
	"moviedeck/proj/internal/domain/models"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMoviesArray(t *testing.T) {
	fsys := fstest.MapFS{
		"movies.json": {Data: []byte(`[
			{"TITLE": "Dune", "Year": 2021, "Genre": ["Sci-Fi"], "rating": 8.5},
			{"title": "Up", "genre": ["Animation", "Family"], "rating": 8.2, "cast": [{"name": "Ed Asner"}]}
		]`)},
	}
	movies, err := New(fsys, "", "", 10).LoadMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, "Dune", movies[0].Title)
	assert.Equal(t, 2021, movies[0].Year)
	assert.Equal(t, []string{"Sci-Fi"}, movies[0].Genre)
	assert.InDelta(t, 8.5, float64(movies[0].Rating), 1e-9)
	assert.Equal(t, models.MovieID("Dune", 2021), movies[0].ID)

	assert.Equal(t, 0, movies[1].Year)
	assert.Equal(t, []models.CastMember{{Name: "Ed Asner"}}, movies[1].Cast)
}

func TestLoadMoviesRatingScale(t *testing.T) {
	fsys := fstest.MapFS{
		"movies.json": {Data: []byte(`[
			{"title": "A", "rating": 4.5},
			{"name": "B", "imDbRating": 7.1},
			{"title": "C"}
		]`)},
	}
	movies, err := New(fsys, "", "", 5).LoadMovies(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 9.0, float64(movies[0].Rating), 1e-9)
	assert.Equal(t, "B", movies[1].Title)
	assert.InDelta(t, 7.1, float64(movies[1].Rating), 1e-9)
	assert.Zero(t, movies[2].Rating)
	assert.NotNil(t, movies[2].Genre)
}

func TestLoadMoviesPerFile(t *testing.T) {
	fsys := fstest.MapFS{
		"b_up.json":           {Data: []byte(`{"title": "Up", "genre": ["Family"]}`)},
		"a_dune.json":         {Data: []byte(`{"title": "Dune", "genre": ["Sci-Fi"]}`)},
		"similar_movies.json": {Data: []byte(`[{"title": "Arrival"}]`)},
		"notes.txt":           {Data: []byte(`ignored`)},
	}
	movies, err := New(fsys, "", "", 10).LoadMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Dune", movies[0].Title)
	assert.Equal(t, "Up", movies[1].Title)
}

func TestLoadMoviesErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"malformed array", fstest.MapFS{"movies.json": {Data: []byte(`[{"title": `)}}},
		{"malformed object", fstest.MapFS{"dune.json": {Data: []byte(`{"title": 1}`)}}},
		{"no assets", fstest.MapFS{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fsys, "", "", 10).LoadMovies(context.Background())
			assert.ErrorIs(t, err, ErrAssetLoad)
		})
	}
}

func TestLoadMoviesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(SampleFS(), "", "", 10).LoadMovies(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadSimilar(t *testing.T) {
	fsys := fstest.MapFS{
		"similar.json": {Data: []byte(`[{"title": "Arrival", "genre": ["Sci-Fi"], "rating": 7.9}]`)},
	}
	similar, err := New(fsys, "", "similar.json", 10).LoadSimilar(context.Background())
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "Arrival", similar[0].Title)

	_, err = New(fstest.MapFS{}, "", "", 10).LoadSimilar(context.Background())
	assert.ErrorIs(t, err, ErrAssetLoad)
}

func TestSampleDataset(t *testing.T) {
	loader := New(SampleFS(), "", "", 10)
	movies, err := loader.LoadMovies(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, movies)
	similar, err := loader.LoadSimilar(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, similar)
}
