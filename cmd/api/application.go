package main

import (
	"io/fs"
	"log/slog"
	"moviedeck/proj/internal/api/tasks"
	"moviedeck/proj/internal/config"
	"moviedeck/proj/internal/lib/validator"
	"moviedeck/proj/internal/services"
	"moviedeck/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	Services  *services.Services
	validator *govalidator.Validate
	decoder   *schema.Decoder
	tasks     *tasks.Pool
}

func NewApplication(cfg *config.Config, log *slog.Logger, kv storage.KV, assetsFS fs.FS) *Application {
	v := validator.New()
	pool := tasks.New(log, cfg.Tasks.MaxWorkers, cfg.Tasks.QueueSize)
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Application{
		cfg:       cfg,
		log:       log,
		validator: v,
		decoder:   decoder,
		tasks:     pool,
		Services:  services.New(log, cfg, kv, assetsFS, v, pool),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}
