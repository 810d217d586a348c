// Package app holds the application container: configuration, loggers
// and the shared database pool that repositories and services are built from.
package app

import (
	"fmt"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/database"
	loggerPkg "github.com/deppfellow/lightbnb/internal/logger"
	"github.com/rs/zerolog"
)

type App struct {
	Config *config.Config

	Logger *zerolog.Logger

	// LoggerService owns the New Relic application, if configured.
	LoggerService *loggerPkg.LoggerService

	DB *database.Database
}

// New opens the database pool and returns the container.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*App, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// Shutdown closes the pool and flushes New Relic.
func (a *App) Shutdown() error {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	a.LoggerService.Shutdown()

	return nil
}
