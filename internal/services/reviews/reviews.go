package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"moviedeck/proj/internal/domain/models"
	"moviedeck/proj/internal/storage"
	"slices"
	"strings"
	"time"

	govalidator "github.com/go-playground/validator/v10"
)

type Catalog interface {
	LoadAll(ctx context.Context) []models.Movie
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type Option func(*Store)

// WithClock replaces the time source used for review timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithMailer enables sharing reviews by email. Mails are sent from the task
// executor, never from the caller's goroutine.
func WithMailer(mailer MailProvider, tasks TaskExecutor) Option {
	return func(s *Store) {
		s.mailer = mailer
		s.tasks = tasks
	}
}

// Store persists one Review per movie title in the key-value store and keeps
// the watched list in sync with it.
type Store struct {
	log       *slog.Logger
	kv        storage.KV
	catalog   Catalog
	validator *govalidator.Validate
	now       func() time.Time
	mailer    MailProvider
	tasks     TaskExecutor

	locks   keyLocks
	watched keyLocks
}

func New(log *slog.Logger, kv storage.KV, catalog Catalog, validator *govalidator.Validate, opts ...Option) *Store {
	s := &Store{
		log:       log,
		kv:        kv,
		catalog:   catalog,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC().Round(0) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lookup reads the persisted review. found is false when nothing is stored;
// err is non-nil only when the stored blob could not be read or decoded.
func (s *Store) lookup(ctx context.Context, title string) (review models.Review, found bool, err error) {
	raw, err := s.kv.Get(ctx, storage.ReviewKey(title))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NewReview(title), false, nil
		}
		return models.NewReview(title), false, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	if strings.TrimSpace(raw) == "" {
		return models.NewReview(title), false, nil
	}
	if err := json.Unmarshal([]byte(raw), &review); err != nil {
		return models.NewReview(title), false, fmt.Errorf("%w: corrupt review: %w", ErrStorageRead, err)
	}
	if review.SelectedEmojis == nil {
		review.SelectedEmojis = []string{}
	}
	if review.MovieName == "" {
		review.MovieName = title
	}
	return review, true, nil
}

// GetReview returns the stored review or a fresh empty one. Read failures are
// logged and degrade to the empty review.
func (s *Store) GetReview(ctx context.Context, title string) models.Review {
	const op = "reviews.Store.GetReview"
	review, found, err := s.lookup(ctx, title)
	if err != nil {
		s.log.Warn("treating unreadable review as absent", "op", op, "title", title, "errMsg", err.Error())
		return review
	}
	if !found {
		s.log.Debug("no review stored", "op", op, "title", title)
	}
	return review
}

// SaveReview writes the review and, when it is rated or watched, makes sure
// the movie is on the watched list.
func (s *Store) SaveReview(ctx context.Context, review models.Review) error {
	if review.MovieName == "" {
		return ErrEmptyTitle
	}
	unlock := s.locks.lock(review.MovieName)
	defer unlock()
	return s.save(ctx, review)
}

func (s *Store) save(ctx context.Context, review models.Review) error {
	const op = "reviews.Store.save"
	log := s.log.With("op", op, "title", review.MovieName)
	if err := s.validator.Struct(review); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRating, err)
	}
	if review.SelectedEmojis == nil {
		review.SelectedEmojis = []string{}
	}
	payload, err := json.Marshal(review)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, storage.ReviewKey(review.MovieName), string(payload)); err != nil {
		log.Error("failed to write review", "errMsg", err.Error())
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	if review.MarksWatched() {
		if err := s.addToWatched(ctx, review.MovieName); err != nil {
			log.Error("failed to update watched list", "errMsg", err.Error())
			return err
		}
	}
	return nil
}

func (s *Store) readWatched(ctx context.Context) []string {
	const op = "reviews.Store.readWatched"
	raw, err := s.kv.Get(ctx, storage.KeyWatchedMovies)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("treating unreadable watched list as empty", "op", op, "errMsg", err.Error())
		}
		return []string{}
	}
	var watched []string
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &watched); err != nil {
			s.log.Warn("treating corrupt watched list as empty", "op", op, "errMsg", err.Error())
			return []string{}
		}
	}
	if watched == nil {
		watched = []string{}
	}
	return watched
}

// addToWatched appends title to the watched list and persists the list only
// when it changed.
func (s *Store) addToWatched(ctx context.Context, title string) error {
	unlock := s.watched.lock(storage.KeyWatchedMovies)
	defer unlock()
	watched := s.readWatched(ctx)
	if slices.Contains(watched, title) {
		return nil
	}
	payload, err := json.Marshal(append(watched, title))
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, storage.KeyWatchedMovies, string(payload)); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

// Watched returns the watched list in insertion order.
func (s *Store) Watched(ctx context.Context) []string {
	return s.readWatched(ctx)
}

// update runs a read-modify-write cycle on one review under its key lock.
func (s *Store) update(ctx context.Context, title string, mutate func(*models.Review)) (models.Review, error) {
	if title == "" {
		return models.Review{}, ErrEmptyTitle
	}
	unlock := s.locks.lock(title)
	defer unlock()
	review := s.GetReview(ctx, title)
	mutate(&review)
	if err := s.save(ctx, review); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (s *Store) SetRating(ctx context.Context, title string, stars int) (models.Review, error) {
	if err := s.validator.Var(stars, "gte=1,lte=5"); err != nil {
		return models.Review{}, ErrInvalidRating
	}
	return s.update(ctx, title, func(r *models.Review) {
		now := s.now()
		r.Rating = stars
		r.DateReviewed = &now
	})
}

// ToggleEmoji adds the reaction if it is not selected and removes it
// otherwise.
func (s *Store) ToggleEmoji(ctx context.Context, title, emoji string) (models.Review, error) {
	if strings.TrimSpace(emoji) == "" {
		return models.Review{}, ErrInvalidEmoji
	}
	return s.update(ctx, title, func(r *models.Review) {
		if r.HasEmoji(emoji) {
			r.SelectedEmojis = slices.DeleteFunc(r.SelectedEmojis, func(e string) bool { return e == emoji })
			return
		}
		r.SelectedEmojis = append(r.SelectedEmojis, emoji)
	})
}

func (s *Store) ToggleWatched(ctx context.Context, title string) (models.Review, error) {
	return s.update(ctx, title, func(r *models.Review) {
		r.IsWatched = !r.IsWatched
		if r.IsWatched {
			now := s.now()
			r.DateWatched = &now
		}
	})
}

// IsReviewed reports whether the movie has a review that counts, see
// models.Review.Counted.
func (s *Store) IsReviewed(ctx context.Context, title string) bool {
	review, found, err := s.lookup(ctx, title)
	return err == nil && found && review.Counted()
}

// ReviewCount counts catalog movies whose stored review counts as reviewed.
func (s *Store) ReviewCount(ctx context.Context) int {
	count := 0
	for _, m := range s.catalog.LoadAll(ctx) {
		if s.IsReviewed(ctx, m.Title) {
			count++
		}
	}
	return count
}

// AllReviewedMovies returns the rated catalog movies, most recently reviewed
// first. Reviews without a date sort last. limit <= 0 returns all of them.
func (s *Store) AllReviewedMovies(ctx context.Context, limit int) []models.ReviewedMovie {
	reviewed := []models.ReviewedMovie{}
	for _, m := range s.catalog.LoadAll(ctx) {
		review := s.GetReview(ctx, m.Title)
		if review.Rating > 0 {
			reviewed = append(reviewed, models.ReviewedMovie{Movie: m, Review: review})
		}
	}
	slices.SortStableFunc(reviewed, func(a, b models.ReviewedMovie) int {
		return compareReviewedAt(b.Review, a.Review)
	})
	if limit > 0 && len(reviewed) > limit {
		reviewed = reviewed[:limit]
	}
	return reviewed
}

// compareReviewedAt orders reviews by review date; a missing date is the
// earliest.
func compareReviewedAt(a, b models.Review) int {
	switch {
	case a.DateReviewed == nil && b.DateReviewed == nil:
		return 0
	case a.DateReviewed == nil:
		return -1
	case b.DateReviewed == nil:
		return 1
	}
	return a.DateReviewed.Compare(*b.DateReviewed)
}
