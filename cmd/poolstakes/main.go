package main

import (
	"log/slog"
	"os"

	"github.com/kilnfi/cardano-pool-stakes/cmd/poolstakes/app"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	command := app.NewPoolStakesCommand()
	if err := command.Execute(); err != nil {
		logger.Error("command execution failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
