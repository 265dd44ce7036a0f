// Package providers contains dependency injection providers for tagexport.
package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/listenupapp/tagexport/internal/config"
	"github.com/listenupapp/tagexport/internal/logger"
)

// ProvideConfig provides the application configuration. The command line
// flags must be registered as a value before the first invoke.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	flags := do.MustInvoke[config.Flags](i)
	return config.LoadConfig(flags)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	level := logger.ParseLevel(cfg.Logger.Level)
	log := logger.New(logger.Config{
		Format:      cfg.Logger.Format,
		Environment: cfg.App.Environment,
		Level:       level,
		AddSource:   cfg.App.Environment == "development" && level <= slog.LevelDebug,
	})

	log.Debug("Configuration loaded",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"library_dir", cfg.Library.Directory,
		"extensions", cfg.Library.Extensions,
		"tag_reader", cfg.Library.Reader,
	)

	return log, nil
}
