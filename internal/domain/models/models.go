package models

import (
	"moviedeck/proj/internal/domain/fields"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// movieNamespace seeds the name-based UUIDs derived for catalog entries.
var movieNamespace = uuid.MustParse("5b0f6a52-8f43-4d0e-9b0c-6a1d2f3e4c51")

const (
	DefaultEmoji     = "🎬"
	UnknownTitle     = "Unknown"
	UnknownDirector  = "Unknown"
	NoStoryline      = "No description available."
	PlaceholderImage = "placeholder_movie.png"
)

type Movie struct {
	ID         uuid.UUID     `json:"id"`                   // Derived from title and year, see MovieID
	Title      string        `json:"title"`                // Movie title, the lookup key of the catalog
	Year       int           `json:"year,omitempty"`       // Release year, 0 when unknown
	Genre      []string      `json:"genre"`                // Movie genres in dataset order
	Director   string        `json:"director,omitempty"`   // Director name
	Rating     fields.Rating `json:"rating"`               // Catalog rating on the 0-10 scale
	Emoji      string        `json:"emoji,omitempty"`      // Emoji tag shown next to the title
	Poster     string        `json:"poster,omitempty"`     // Remote URL or local file name
	Storyline  string        `json:"storyline,omitempty"`  // Short plot description
	TrailerURL string        `json:"trailerUrl,omitempty"` // Optional trailer link
	Cast       []CastMember  `json:"cast,omitempty"`       // Optional cast list
}

type CastMember struct {
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Character string `json:"character,omitempty"`
}

// MovieID returns the surrogate identifier for a title and year. Titles are
// compared case-insensitively so the ID agrees with title lookups.
func MovieID(title string, year int) uuid.UUID {
	return uuid.NewSHA1(movieNamespace, []byte(strings.ToLower(title)+"|"+strconv.Itoa(year)))
}

// FormattedGenres renders the genre line shown on movie cards.
func (m Movie) FormattedGenres() string {
	if len(m.Genre) == 0 {
		return "Movie"
	}
	return "Movie | " + strings.Join(m.Genre, " | ")
}

// PosterSource returns the poster reference and whether it is a remote URL.
// Movies without a poster fall back to a file name derived from the title.
func (m Movie) PosterSource() (src string, remote bool) {
	poster := strings.TrimSpace(m.Poster)
	lower := strings.ToLower(poster)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return poster, true
	}
	if poster != "" {
		return poster, false
	}
	if m.Title == "" {
		return PlaceholderImage, false
	}
	name := strings.ToLower(m.Title)
	name = strings.NewReplacer(" ", "_", ":", "", "'", "").Replace(name)
	return name + ".jpg", false
}

type SimilarMovie struct {
	Title     string        `json:"title"`
	Year      int           `json:"year,omitempty"`
	Genre     []string      `json:"genre"`
	Director  string        `json:"director,omitempty"`
	Rating    fields.Rating `json:"rating"`
	Emoji     string        `json:"emoji,omitempty"`
	Poster    string        `json:"poster,omitempty"`
	Storyline string        `json:"storyline,omitempty"`
}

// ToMovie turns a recommendation into a browsable catalog entry, filling the
// blanks a similar-movies dataset usually leaves.
func (s SimilarMovie) ToMovie() Movie {
	m := Movie{
		Title:     s.Title,
		Year:      s.Year,
		Genre:     s.Genre,
		Director:  s.Director,
		Rating:    s.Rating,
		Poster:    s.Poster,
		Storyline: s.Storyline,
		Emoji:     GenreEmoji(s.Genre),
	}
	if m.Title == "" {
		m.Title = UnknownTitle
	}
	if m.Genre == nil {
		m.Genre = []string{}
	}
	if m.Director == "" {
		m.Director = UnknownDirector
	}
	if m.Storyline == "" {
		m.Storyline = NoStoryline
	}
	m.ID = MovieID(m.Title, m.Year)
	return m
}

var genreEmojis = map[string]string{
	"action":      "💥",
	"adventure":   "🗺️",
	"animation":   "🎨",
	"comedy":      "😂",
	"crime":       "🔫",
	"documentary": "📽️",
	"drama":       "🎭",
	"family":      "👨‍👩‍👧‍👦",
	"fantasy":     "🧙",
	"horror":      "👻",
	"mystery":     "🔍",
	"romance":     "❤️",
	"sci-fi":      "🚀",
	"thriller":    "😱",
	"western":     "🤠",
	"war":         "⚔️",
	"musical":     "🎵",
	"biography":   "📖",
	"history":     "🏛️",
	"sport":       "⚽",
}

// GenreEmoji returns the emoji of the first genre that has one.
func GenreEmoji(genres []string) string {
	for _, g := range genres {
		if e, ok := genreEmojis[strings.ToLower(g)]; ok {
			return e
		}
	}
	return DefaultEmoji
}

// Review is the per-movie record kept in the key-value store under
// review_<title>. It is created lazily on the first interaction.
type Review struct {
	MovieName      string     `json:"movieName"`
	Rating         int        `json:"rating" validate:"gte=0,lte=5"`
	SelectedEmojis []string   `json:"selectedEmojis"`
	IsWatched      bool       `json:"isWatched"`
	DateWatched    *time.Time `json:"dateWatched"`
	DateReviewed   *time.Time `json:"dateReviewed"`
}

func NewReview(title string) Review {
	return Review{MovieName: title, SelectedEmojis: []string{}}
}

// HasEmoji reports whether the reaction is already selected.
func (r Review) HasEmoji(emoji string) bool {
	for _, e := range r.SelectedEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}

// Counted reports whether the review counts as "reviewed": it carries a star
// rating or at least one reaction.
func (r Review) Counted() bool {
	return r.Rating > 0 || len(r.SelectedEmojis) > 0
}

// MarksWatched reports whether saving the review must add the movie to the
// watched list.
func (r Review) MarksWatched() bool {
	return r.Rating > 0 || r.IsWatched
}

type ReviewedMovie struct {
	Movie  Movie  `json:"movie"`
	Review Review `json:"review"`
}

type Dashboard struct {
	Username      string          `json:"username"`
	TotalMovies   int             `json:"totalMovies"`
	WatchedCount  int             `json:"watchedCount"`
	ReviewCount   int             `json:"reviewCount"`
	AverageRating fields.Rating   `json:"averageRating"`
	TopRated      []Movie         `json:"topRated"`
	RecentReviews []ReviewedMovie `json:"recentReviews"`
}
