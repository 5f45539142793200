package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"moviedeck/proj/internal/storage"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const kvTable = "kv_store"

// Querier is the subset of pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresDB struct {
	Conn *pgxpool.Pool
	db   Querier
	sq   squirrel.StatementBuilderType
}

func New(ctx context.Context, dsn string, maxConns int, maxConnIdleTime time.Duration) (*PostgresDB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = int32(maxConns)
	cfg.MaxConnIdleTime = maxConnIdleTime
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	db := NewWithQuerier(pool)
	db.Conn = pool
	return db, nil
}

// NewWithQuerier builds a store over an arbitrary querier, e.g. a pgxmock pool.
func NewWithQuerier(q Querier) *PostgresDB {
	return &PostgresDB{
		db: q,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Migrate applies the embedded goose migrations.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if db.Conn == nil {
		return errors.New("postgres: migrate requires a connection pool")
	}
	sqlDB := stdlib.OpenDBFromPool(db.Conn)
	defer sqlDB.Close()
	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (db *PostgresDB) Close() {
	if db.Conn != nil {
		db.Conn.Close()
	}
}

func (db *PostgresDB) Get(ctx context.Context, key string) (string, error) {
	query, args, err := db.sq.Select("value").From(kvTable).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return "", err
	}
	var value string
	if err := db.db.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (db *PostgresDB) Set(ctx context.Context, key, value string) error {
	query, args, err := db.sq.Insert(kvTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return err
	}
	_, err = db.db.Exec(ctx, query, args...)
	return err
}

func (db *PostgresDB) Delete(ctx context.Context, key string) error {
	query, args, err := db.sq.Delete(kvTable).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return err
	}
	_, err = db.db.Exec(ctx, query, args...)
	return err
}

func (db *PostgresDB) Clear(ctx context.Context) error {
	query, args, err := db.sq.Delete(kvTable).ToSql()
	if err != nil {
		return err
	}
	_, err = db.db.Exec(ctx, query, args...)
	return err
}
