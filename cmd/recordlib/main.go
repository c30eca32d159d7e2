package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/leengari/recordlib/internal/cli"
	"github.com/leengari/recordlib/internal/config"
	"github.com/leengari/recordlib/internal/logging"
)

func main() {
	// Variables already set in the environment win over .env
	envLoaded := godotenv.Load() == nil

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	logger, closeFn, err := logging.Setup(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup failed: %v\n", err)
		os.Exit(2)
	}
	if envLoaded {
		logger.Debug("loaded .env file")
	}

	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		slog.Error("command failed", "error", err)
		closeFn()
		os.Exit(1)
	}
	closeFn()
}
