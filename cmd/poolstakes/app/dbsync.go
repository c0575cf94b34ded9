package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kilnfi/cardano-pool-stakes/cmd/poolstakes/app/config"
	"github.com/kilnfi/cardano-pool-stakes/internal/database"
	"github.com/kilnfi/cardano-pool-stakes/internal/dbsync"
	"github.com/spf13/cobra"
)

var dbsyncFlags = map[string]string{
	"database.url":            "database-url",
	"database.max-open-conns": "database-max-open-conns",
}

func NewDbsyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dbsync",
		Short: "export the stake of each pool from a cardano-db-sync database",
		Args:  cobra.NoArgs,
		RunE:  runDbsync,
	}

	addEpochFlags(cmd)
	cmd.Flags().StringP("database-url", "", "", "cardano-db-sync postgres connection string (env DATABASE_URL)")
	cmd.Flags().IntP("database-max-open-conns", "", database.DefaultMaxOpenConns, "maximum number of open connections to the database")

	return cmd
}

func runDbsync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, config.SourceDbsync, dbsyncFlags)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// one pool for the whole range
	db := database.NewDatabase(database.Options{
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("unable to close database", slog.String("error", err.Error()))
		}
	}()

	return export(ctx, cfg, dbsync.NewSource(db.DB))
}
