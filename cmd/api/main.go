package main

import (
	"context"
	"flag"
	"io/fs"
	"moviedeck/proj/internal/assets"
	"moviedeck/proj/internal/config"
	"moviedeck/proj/internal/lib/logger"
	"os"
	"time"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	kv, closeStorage, err := openStorage(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "errMsg", err.Error())
		os.Exit(1)
	}
	defer closeStorage()

	var assetsFS fs.FS = assets.SampleFS()
	if cfg.Assets.Dir != "" {
		assetsFS = os.DirFS(cfg.Assets.Dir)
	}
	log.Info("assets configured", "dir", cfg.Assets.Dir, "rating_scale", cfg.Assets.RatingScale)

	app := NewApplication(cfg, log, kv, assetsFS)
	if err := app.serve(); err != nil {
		log.Error("server stopped with error", "errMsg", err.Error())
		closeStorage()
		os.Exit(1)
	}
}
