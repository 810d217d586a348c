package main

import (
	"context"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/app"
	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/lib/utils"
	"github.com/deppfellow/lightbnb/internal/logger"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/service"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lightbnb",
		Short: "LightBnB data layer",
		Long:  `lightbnb reads and writes LightBnB users, reservations and properties in PostgreSQL.`,

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newMigrateCmd(),
		newStatusCmd(),
		newVersionCmd(),
		newUsersCmd(),
		newReservationsCmd(),
		newPropertiesCmd(),
	)

	return rootCmd
}

// setup loads the configuration and builds the loggers.
func setup() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, &log, loggerService, nil
}

// withApp opens the application for the duration of one command.
// With New Relic configured the command runs inside a transaction named
// after its path, so database segments and errors are attached to it.
func withApp(fn func(ctx context.Context, cmd *cobra.Command, a *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, log, loggerService, err := setup()
		if err != nil {
			return err
		}

		a, err := app.New(cfg, log, loggerService)
		if err != nil {
			loggerService.Shutdown()
			return err
		}
		defer func() {
			if err := a.Shutdown(); err != nil {
				log.Error().Err(err).Msg("shutdown failed")
			}
		}()

		ctx := cmd.Context()
		if nrApp := loggerService.GetApplication(); nrApp != nil {
			txn := nrApp.StartTransaction(cmd.CommandPath())
			defer txn.End()
			ctx = newrelic.NewContext(ctx, txn)
		}

		err = fn(ctx, cmd, a)
		if err != nil {
			newrelic.FromContext(ctx).NoticeError(nrpkgerrors.Wrap(err))
		}
		return err
	}
}

// withServices is withApp for commands that only need the services.
func withServices(fn func(ctx context.Context, cmd *cobra.Command, s *service.Services) error) func(*cobra.Command, []string) error {
	return withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App) error {
		repos := repository.NewRepositories(a.DB.Pool, a.Logger)
		return fn(ctx, cmd, service.NewServices(a, repos))
	})
}

func printResult(cmd *cobra.Command, v any) error {
	return utils.PrintJSON(cmd.OutOrStdout(), v)
}
