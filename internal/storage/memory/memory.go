package memory

import (
	"context"
	"moviedeck/proj/internal/storage"
	"sync"
)

// Storage keeps every key in process memory. Used when no backend is
// configured and in tests.
type Storage struct {
	sync.RWMutex
	data map[string]string
}

func New() *Storage {
	return &Storage{data: map[string]string{}}
}

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	s.RLock()
	defer s.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.Lock()
	defer s.Unlock()
	s.data[key] = value
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.Lock()
	defer s.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Storage) Clear(_ context.Context) error {
	s.Lock()
	defer s.Unlock()
	s.data = map[string]string{}
	return nil
}

// Len returns the number of stored keys.
func (s *Storage) Len() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.data)
}
