package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/contactform/internal/app"
	"github.com/dmitrymomot/contactform/pkg/config"
	"github.com/dmitrymomot/contactform/pkg/logger"
)

func main() {
	var cfg app.Config
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	log, err := app.NewLogger(cfg)
	if err != nil {
		slog.Error("invalid logger config", logger.Error(err))
		os.Exit(1)
	}
	logger.SetAsDefault(log)

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to start", logger.Error(err))
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
