package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	bfAPI "github.com/blockfrost/blockfrost-go"
	"github.com/kilnfi/cardano-pool-stakes/cmd/poolstakes/app/config"
	"github.com/kilnfi/cardano-pool-stakes/internal/blockfrost"
	"github.com/kilnfi/cardano-pool-stakes/internal/blockfrost/blockfrostapi"
	"github.com/spf13/cobra"
)

var blockfrostFlags = map[string]string{
	"blockfrost.project-id": "blockfrost-project-id",
	"blockfrost.endpoint":   "blockfrost-endpoint",
	"blockfrost.timeout":    "blockfrost-timeout",
}

func NewBlockfrostCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blockfrost",
		Short: "export the stake of each pool using the Blockfrost API",
		Args:  cobra.NoArgs,
		RunE:  runBlockfrost,
	}

	addEpochFlags(cmd)
	cmd.Flags().StringP("blockfrost-project-id", "", "", "blockfrost project id (env BLOCKFROST_PROJECT_ID)")
	cmd.Flags().StringP("blockfrost-endpoint", "", bfAPI.CardanoMainNet, "blockfrost API endpoint")
	cmd.Flags().IntP("blockfrost-timeout", "", 60, "Timeout for requests to the Blockfrost API (in seconds)")

	return cmd
}

func runBlockfrost(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, config.SourceBlockfrost, blockfrostFlags)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := blockfrostapi.NewClient(blockfrostapi.ClientOptions{
		ProjectID: cfg.Blockfrost.ProjectID,
		Server:    cfg.Blockfrost.Endpoint,
		Timeout:   time.Second * time.Duration(cfg.Blockfrost.Timeout),
	})
	source := blockfrost.NewSource(client)

	if err := source.Ping(ctx); err != nil {
		return fmt.Errorf("unable to check blockfrost health: %w", err)
	}

	return export(ctx, cfg, source)
}
