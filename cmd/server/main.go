package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/fourinarow/internal/api"
	"github.com/mcoot/fourinarow/internal/config"
)

const defaultConfigPath = "config.yml"

func main() {
	cfg := config.MustLoad(configPath())

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := api.Run(ctx, cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// configPath prefers CONFIG_PATH, then config.yml in the working directory.
// An empty path means settings come from the environment alone.
func configPath() string {
	path, err := config.PathFromEnv()
	if err != nil {
		panic(err)
	}
	if path != "" {
		return path
	}
	if _, err := os.Stat(defaultConfigPath); errors.Is(err, os.ErrNotExist) {
		return ""
	}
	return defaultConfigPath
}
