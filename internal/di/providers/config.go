// Package providers contains dependency injection providers for the
// Shelfmark client runtime.
package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/shelfmarkapp/shelfmark-client/internal/config"
	"github.com/shelfmarkapp/shelfmark-client/internal/logger"
)

// ProvideConfig provides the runtime configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Format:      cfg.Logger.Format,
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Shelfmark client runtime",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"catalog_url", cfg.Catalog.BaseURL,
	)

	return log, nil
}
