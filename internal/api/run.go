package api

import (
	"context"
	"log/slog"

	"github.com/mcoot/fourinarow/internal/config"
	"github.com/mcoot/fourinarow/internal/factory"
	"github.com/mcoot/fourinarow/internal/services/bot"
)

// Run wires the application from cfg and serves the API until ctx is
// cancelled, then shuts down gracefully
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app, err := factory.New(factory.ConfigFrom(cfg, logger))
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	router := NewRouter(RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		BotService:     app.BotService,
		Engine:         app.Engine,
		Clock:          app.Clock,
		Depths:         bot.Depths{X: cfg.Engine.XDepth, O: cfg.Engine.ODepth},
		MaxDepth:       cfg.Engine.MaxDepth,
	})

	server := NewServer(router, ServerConfigFrom(cfg.HTTP), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.Storage.Type),
		slog.String("adjacency", cfg.Engine.Adjacency),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return server.Shutdown(context.Background())
	}
}
