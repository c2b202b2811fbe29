package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/qepting91/hotfavs/internal/config"
)

func main() {
	// 1. Setup
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	// 2. Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Run
	if err := rootApp(&cfg, logger).RunContext(ctx, os.Args); err != nil {
		logger.Error("hotfavs failed", "err", err)
		os.Exit(1)
	}
}
