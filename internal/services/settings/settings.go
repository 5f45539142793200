package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"moviedeck/proj/internal/storage"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	DefaultUsername   = "Guest"
	MaxUsernameLength = 64
)

var (
	ErrInvalidUsername = errors.New("username must be between 1 and 64 characters")
	ErrStorageWrite    = errors.New("settings storage write failed")
)

// Reloader is anything holding data that must be re-read after the store is
// cleared.
type Reloader interface {
	Reload()
}

// Service manages the user preferences kept in the key-value store.
type Service struct {
	log       *slog.Logger
	kv        storage.KV
	reloaders []Reloader
}

func New(log *slog.Logger, kv storage.KV, reloaders ...Reloader) *Service {
	return &Service{log: log, kv: kv, reloaders: reloaders}
}

// read returns the stored value and whether one was found. Backend errors are
// logged and reported as not found.
func (s *Service) read(ctx context.Context, op, key string) (string, bool) {
	v, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("failed to read setting", "op", op, "key", key, "errMsg", err.Error())
		}
		return "", false
	}
	return v, true
}

// Username returns the stored username, or an empty string when none is set.
func (s *Service) Username(ctx context.Context) string {
	const op = "settings.Service.Username"
	v, _ := s.read(ctx, op, storage.KeyUsername)
	return v
}

// DisplayName is the username used in greetings.
func (s *Service) DisplayName(ctx context.Context) string {
	if name := s.Username(ctx); name != "" {
		return name
	}
	return DefaultUsername
}

func (s *Service) SetUsername(ctx context.Context, name string) (string, error) {
	const op = "settings.Service.SetUsername"
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxUsernameLength {
		return "", ErrInvalidUsername
	}
	if err := s.kv.Set(ctx, storage.KeyUsername, name); err != nil {
		s.log.Error("failed to save username", "op", op, "errMsg", err.Error())
		return "", fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return name, nil
}

// IsDarkTheme defaults to true when nothing or garbage is stored.
func (s *Service) IsDarkTheme(ctx context.Context) bool {
	const op = "settings.Service.IsDarkTheme"
	v, ok := s.read(ctx, op, storage.KeyDarkTheme)
	if !ok {
		return true
	}
	dark, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		s.log.Warn("ignoring malformed theme value", "op", op, "value", v)
		return true
	}
	return dark
}

func (s *Service) SetDarkTheme(ctx context.Context, dark bool) error {
	const op = "settings.Service.SetDarkTheme"
	if err := s.kv.Set(ctx, storage.KeyDarkTheme, strconv.FormatBool(dark)); err != nil {
		s.log.Error("failed to save theme", "op", op, "errMsg", err.Error())
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

// SignOut forgets the username and the theme preference. Reviews stay.
func (s *Service) SignOut(ctx context.Context) error {
	const op = "settings.Service.SignOut"
	for _, key := range []string{storage.KeyUsername, storage.KeyDarkTheme} {
		if err := s.kv.Delete(ctx, key); err != nil {
			s.log.Error("failed to delete setting", "op", op, "key", key, "errMsg", err.Error())
			return fmt.Errorf("%w: %w", ErrStorageWrite, err)
		}
	}
	return nil
}

// ClearCache wipes the whole store and makes every Reloader read its data
// again on next use.
func (s *Service) ClearCache(ctx context.Context) error {
	const op = "settings.Service.ClearCache"
	log := s.log.With("op", op)
	if err := s.kv.Clear(ctx); err != nil {
		log.Error("failed to clear storage", "errMsg", err.Error())
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	for _, r := range s.reloaders {
		r.Reload()
	}
	log.Info("cache cleared")
	return nil
}
