package main

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/lightbnb/internal/app"
	"github.com/deppfellow/lightbnb/internal/database"
	"github.com/spf13/cobra"
)

const statusTimeout = 5 * time.Second

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, loggerService, err := setup()
			if err != nil {
				return err
			}
			defer loggerService.Shutdown()

			return database.Migrate(cmd.Context(), log, cfg)
		},
	}
}

type statusReport struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Latency  string `json:"latency"`

	SchemaVersion int32 `json:"schema_version"`
	SchemaLatest  int32 `json:"schema_latest"`

	TotalConns    int32 `json:"total_conns"`
	IdleConns     int32 `json:"idle_conns"`
	AcquiredConns int32 `json:"acquired_conns"`
	MaxConns      int32 `json:"max_conns"`
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the database connection",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app.App) error {
			ctx, cancel := context.WithTimeout(ctx, statusTimeout)
			defer cancel()

			start := time.Now()
			if err := a.DB.Ping(ctx); err != nil {
				a.Logger.Error().Err(err).Msg("database health check failed")
				return fmt.Errorf("database unreachable: %w", err)
			}

			latency := time.Since(start)

			version, err := database.SchemaVersion(ctx, a.DB.Pool)
			if err != nil {
				return err
			}

			status := "healthy"
			if version < database.LatestVersion() {
				status = "migrations pending"
			}

			stat := a.DB.Pool.Stat()
			return printResult(cmd, statusReport{
				Status:        status,
				Database:      a.Config.Database.Name,
				Latency:       latency.String(),
				SchemaVersion: version,
				SchemaLatest:  database.LatestVersion(),
				TotalConns:    stat.TotalConns(),
				IdleConns:     stat.IdleConns(),
				AcquiredConns: stat.AcquiredConns(),
				MaxConns:      stat.MaxConns(),
			})
		}),
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lightbnb %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
