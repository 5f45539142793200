package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	Debug   bool    `yaml:"debug" env:"DEBUG"`
	Limiter Limiter `yaml:"limiter"`
	Server  Server  `yaml:"server"`
	Storage Storage `yaml:"storage"`
	Assets  Assets  `yaml:"assets"`
	Search  Search  `yaml:"search"`
	Tasks   Tasks   `yaml:"tasks"`
	SMTP    SMTP    `yaml:"smtp"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled" env:"LIMITER_ENABLED"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Server struct {
	Port string `yaml:"port" env:"SERVER_PORT" env-default:"8000"`
	Host string `yaml:"host" env:"SERVER_HOST" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type Storage struct {
	Driver   string   `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
}

type Postgres struct {
	Dsn             string        `yaml:"dsn" env:"POSTGRES_DSN"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Prefix   string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"moviedeck"`
}

type Assets struct {
	// Dir is read instead of the bundled sample dataset when set.
	Dir         string `yaml:"dir" env:"ASSETS_DIR"`
	Movies      string `yaml:"movies" env-default:"movies.json"`
	Similar     string `yaml:"similar" env-default:"similar_movies.json"`
	RatingScale int    `yaml:"rating_scale" env-default:"10"`
}

type Search struct {
	Debounce     time.Duration `yaml:"debounce" env-default:"350ms"`
	DefaultLimit int           `yaml:"default_limit" env-default:"20"`
}

type Tasks struct {
	MaxWorkers int `yaml:"max_workers" env-default:"2"`
	QueueSize  int `yaml:"queue_size" env-default:"32"`
}

type SMTP struct {
	Host         string        `yaml:"host" env:"SMTP_HOST"`
	Port         int           `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username     string        `yaml:"username" env:"SMTP_USERNAME"`
	Password     string        `yaml:"password" env:"SMTP_PASSWORD"`
	Sender       string        `yaml:"sender" env:"SMTP_SENDER" env-default:"MovieDeck <no-reply@moviedeck.local>"`
	Timeout      time.Duration `yaml:"timeout" env-default:"5s"`
	RetriesCount int           `yaml:"retries_count" env-default:"3"`
}

// Enabled reports whether review sharing by email is configured.
func (s SMTP) Enabled() bool {
	return s.Host != ""
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageRedis:
	case StoragePostgres:
		if c.Storage.Postgres.Dsn == "" {
			return errors.New("storage.postgres.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Assets.RatingScale != 5 && c.Assets.RatingScale != 10 {
		return fmt.Errorf("assets.rating_scale must be 5 or 10, got %d", c.Assets.RatingScale)
	}
	if c.Search.Debounce < 0 {
		return errors.New("search.debounce must not be negative")
	}
	if c.Tasks.MaxWorkers < 1 {
		return errors.New("tasks.max_workers must be at least 1")
	}
	return nil
}

// Load reads a .env file if present, then the YAML config, with environment
// variables taking precedence over both.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	var cfg Config
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s not found: %w", configPath, err)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}
