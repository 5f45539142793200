package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieID(t *testing.T) {
	assert.Equal(t, MovieID("Dune", 2021), MovieID("dune", 2021))
	assert.NotEqual(t, MovieID("Dune", 2021), MovieID("Dune", 1984))
}

func TestFormattedGenres(t *testing.T) {
	assert.Equal(t, "Movie", Movie{}.FormattedGenres())
	assert.Equal(t, "Movie | Animation | Family", Movie{Genre: []string{"Animation", "Family"}}.FormattedGenres())
}

func TestPosterSource(t *testing.T) {
	t.Run("remote", func(t *testing.T) {
		src, remote := Movie{Poster: "HTTPS://img.example.com/dune.jpg"}.PosterSource()
		assert.True(t, remote)
		assert.Equal(t, "HTTPS://img.example.com/dune.jpg", src)
	})
	t.Run("local file", func(t *testing.T) {
		src, remote := Movie{Poster: "dune.jpg"}.PosterSource()
		assert.False(t, remote)
		assert.Equal(t, "dune.jpg", src)
	})
	t.Run("derived from title", func(t *testing.T) {
		src, _ := Movie{Title: "Harry Potter: Philosopher's Stone"}.PosterSource()
		assert.Equal(t, "harry_potter_philosophers_stone.jpg", src)
	})
	t.Run("placeholder", func(t *testing.T) {
		src, _ := Movie{}.PosterSource()
		assert.Equal(t, PlaceholderImage, src)
	})
}

func TestSimilarMovieToMovie(t *testing.T) {
	m := SimilarMovie{Genre: []string{"Unknown", "sci-fi"}, Year: 1999}.ToMovie()
	assert.Equal(t, UnknownTitle, m.Title)
	assert.Equal(t, UnknownDirector, m.Director)
	assert.Equal(t, NoStoryline, m.Storyline)
	assert.Equal(t, "🚀", m.Emoji)
	assert.Equal(t, MovieID(UnknownTitle, 1999), m.ID)

	m = SimilarMovie{Title: "Heat"}.ToMovie()
	assert.Equal(t, DefaultEmoji, m.Emoji)
	assert.NotNil(t, m.Genre)
}

func TestReviewPredicates(t *testing.T) {
	r := NewReview("Dune")
	assert.False(t, r.Counted())
	assert.False(t, r.MarksWatched())

	r.IsWatched = true
	assert.False(t, r.Counted())
	assert.True(t, r.MarksWatched())

	r = NewReview("Dune")
	r.SelectedEmojis = append(r.SelectedEmojis, "🔥")
	assert.True(t, r.Counted())
	assert.True(t, r.HasEmoji("🔥"))
	assert.False(t, r.MarksWatched())

	r.Rating = 3
	assert.True(t, r.MarksWatched())
}
