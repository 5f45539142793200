package storage

import "context"

// Keys shared by every component that talks to the key-value store.
const (
	KeyUsername      = "username"
	KeyDarkTheme     = "IsDarkTheme"
	KeyWatchedMovies = "watched_movies"
	reviewKeyPrefix  = "review_"
)

// KV is a flat string-keyed store of opaque string blobs. Get returns
// ErrNotFound for an absent key; Delete of an absent key is not an error.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

func ReviewKey(title string) string {
	return reviewKeyPrefix + title
}
