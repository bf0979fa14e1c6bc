// Package providers contains dependency injection providers for the Foodgram server.
package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/tvules/Foodgram/internal/config"
	"github.com/tvules/Foodgram/internal/logger"
)

// shutdownTimeout bounds graceful shutdown of long-lived components.
const shutdownTimeout = 10 * time.Second

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
		AddSource:   cfg.Log.Environment == "development",
		Environment: cfg.Log.Environment,
	})

	log.Info("Starting Foodgram server",
		"environment", cfg.Log.Environment,
		"log_level", cfg.Log.Level,
		"db_path", cfg.Database.Path,
		"media_path", cfg.Media.Path,
	)

	return log, nil
}
