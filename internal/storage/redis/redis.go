package redis

import (
	"context"
	"moviedeck/proj/internal/storage"

	goredis "github.com/go-redis/redis"
)

const scanBatch = 100

type Storage struct {
	client *goredis.Client
	prefix string
}

// New connects to addr and verifies the connection with a PING.
func New(addr, password string, db int, prefix string) (*Storage, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewWithClient(client, prefix), nil
}

func NewWithClient(client *goredis.Client, prefix string) *Storage {
	return &Storage{client: client, prefix: prefix}
}

func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.WithContext(ctx).Get(s.fullKey(key)).Result()
	if err != nil {
		if err == goredis.Nil {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	return s.client.WithContext(ctx).Set(s.fullKey(key), value, 0).Err()
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.client.WithContext(ctx).Del(s.fullKey(key)).Err()
}

// Clear removes every key under the store prefix. Without a prefix the whole
// logical database is flushed.
func (s *Storage) Clear(ctx context.Context) error {
	client := s.client.WithContext(ctx)
	if s.prefix == "" {
		return client.FlushDB().Err()
	}
	var cursor uint64
	for {
		keys, next, err := client.Scan(cursor, s.prefix+":*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := client.Del(keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *Storage) fullKey(key string) string {
	if s.prefix != "" {
		return s.prefix + ":" + key
	}
	return key
}
