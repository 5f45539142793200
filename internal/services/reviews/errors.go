package reviews

import "errors"

var (
	ErrStorageRead         = errors.New("review storage read failed")
	ErrStorageWrite        = errors.New("review storage write failed")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidEmoji        = errors.New("emoji must not be empty")
	ErrEmptyTitle          = errors.New("movie title must not be empty")
	ErrNothingToShare      = errors.New("rate the movie or add reactions before sharing")
	ErrMailerNotConfigured = errors.New("sharing by email is not configured")
)
