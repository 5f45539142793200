package main

import (
	"context"
	"fmt"
	"log/slog"
	"moviedeck/proj/internal/config"
	"moviedeck/proj/internal/storage"
	"moviedeck/proj/internal/storage/memory"
	"moviedeck/proj/internal/storage/postgres"
	"moviedeck/proj/internal/storage/redis"
)

// openStorage connects the configured key-value backend. The returned func
// releases it.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.KV, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pgCfg := cfg.Storage.Postgres
		db, err := postgres.New(ctx, pgCfg.Dsn, pgCfg.MaxConns, pgCfg.MaxConnIdleTime)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("database connection established", "driver", cfg.Storage.Driver)
		return db, db.Close, nil
	case config.StorageRedis:
		redisCfg := cfg.Storage.Redis
		store, err := redis.New(redisCfg.Addr, redisCfg.Password, redisCfg.DB, redisCfg.Prefix)
		if err != nil {
			return nil, nil, err
		}
		log.Info("redis connection established", "addr", redisCfg.Addr, "prefix", redisCfg.Prefix)
		return store, func() {
			if err := store.Close(); err != nil {
				log.Warn("failed to close redis client", "errMsg", err.Error())
			}
		}, nil
	default:
		log.Info("using in-memory storage, data is lost on restart")
		return memory.New(), func() {}, nil
	}
}
