package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"moviedeck/proj/internal/config"
	"moviedeck/proj/internal/storage"
	"moviedeck/proj/internal/storage/memory"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

const testMovies = `[
	{"title": "Dune", "year": 2021, "genre": ["Sci-Fi", "Adventure"], "director": "Denis Villeneuve", "rating": 8.0, "poster": "https://img.example.com/dune.jpg"},
	{"title": "Up", "year": 2009, "genre": ["Animation", "Family"], "director": "Pete Docter", "rating": 8.3},
	{"title": "Arrival", "year": 2016, "genre": ["Sci-Fi", "Drama"], "director": "Denis Villeneuve", "rating": 7.9},
	{"title": "Spider-Man: Into the Spider-Verse", "year": 2018, "genre": ["Animation", "Action"], "director": "Bob Persichetti", "rating": 8.4}
]`

const testSimilar = `[
	{"title": "Heat", "genre": ["Crime"], "rating": 8.3},
	{"title": "Interstellar", "year": 2014, "genre": ["Sci-Fi"], "rating": 8.7},
	{"title": "Coco", "genre": ["Animation", "Family"], "rating": 8.4}
]`

func testConfig() *config.Config {
	return &config.Config{
		Storage: config.Storage{Driver: config.StorageMemory},
		Assets:  config.Assets{Movies: "movies.json", Similar: "similar_movies.json", RatingScale: 10},
		Search:  config.Search{Debounce: 50 * time.Millisecond, DefaultLimit: 20},
		Tasks:   config.Tasks{MaxWorkers: 1, QueueSize: 4},
		Server:  config.Server{ShutdownTimeout: time.Second},
	}
}

func NewTestApplication(t *testing.T, cfg *config.Config, kv storage.KV) *Application {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	if kv == nil {
		kv = memory.New()
	}
	fsys := fstest.MapFS{
		"movies.json":         {Data: []byte(testMovies)},
		"similar_movies.json": {Data: []byte(testSimilar)},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewApplication(cfg, log, kv, fsys)
}

type apiResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) apiResponse[T] {
	t.Helper()
	var resp apiResponse[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func cardTitles(cards []movieCard) []string {
	titles := make([]string, 0, len(cards))
	for _, c := range cards {
		titles = append(titles, c.Title)
	}
	return titles
}
