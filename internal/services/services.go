package services

import (
	"io/fs"
	"log/slog"
	"moviedeck/proj/internal/assets"
	"moviedeck/proj/internal/config"
	"moviedeck/proj/internal/mails"
	"moviedeck/proj/internal/services/catalog"
	"moviedeck/proj/internal/services/dashboard"
	"moviedeck/proj/internal/services/recommend"
	"moviedeck/proj/internal/services/reviews"
	"moviedeck/proj/internal/services/settings"
	"moviedeck/proj/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
)

type Services struct {
	Catalog   *catalog.Repository
	Reviews   *reviews.Store
	Recommend *recommend.Recommender
	Dashboard *dashboard.Aggregator
	Settings  *settings.Service
}

// New wires every service over one key-value store and one asset file
// system. Review emails are only enabled when SMTP is configured.
func New(
	log *slog.Logger,
	cfg *config.Config,
	kv storage.KV,
	assetsFS fs.FS,
	validator *govalidator.Validate,
	taskExecutor reviews.TaskExecutor,
) *Services {
	loader := assets.New(assetsFS, cfg.Assets.Movies, cfg.Assets.Similar, cfg.Assets.RatingScale)
	catalogRepo := catalog.New(log, loader)
	recommender := recommend.New(log, loader, nil)

	var opts []reviews.Option
	if cfg.SMTP.Enabled() {
		mailer := mails.New(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Timeout,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.Sender,
			cfg.SMTP.RetriesCount,
		)
		opts = append(opts, reviews.WithMailer(mailer, taskExecutor))
	}
	reviewStore := reviews.New(log, kv, catalogRepo, validator, opts...)
	settingsService := settings.New(log, kv, catalogRepo, recommender)

	return &Services{
		Catalog:   catalogRepo,
		Reviews:   reviewStore,
		Recommend: recommender,
		Dashboard: dashboard.New(log, catalogRepo, reviewStore, settingsService),
		Settings:  settingsService,
	}
}
