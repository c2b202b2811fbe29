package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/qepting91/hotfavs/internal/collector"
	"github.com/qepting91/hotfavs/internal/config"
	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/qepting91/hotfavs/internal/favorites"
	"github.com/qepting91/hotfavs/internal/storage"
	"github.com/qepting91/hotfavs/internal/view"
)

// app is the wired object graph shared by every command.
type app struct {
	gateway domain.Gateway
	writer  *storage.WriterService
	store   *favorites.Store
	view    *view.View
	logger  *slog.Logger

	writerWg sync.WaitGroup
}

func newApp(cfg config.Config, logger *slog.Logger) (*app, error) {
	gw, err := collector.NewCollector(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize collector: %w", err)
	}
	logger.Info("Collector initialized", "mode", cfg.CollectorMode)

	slot := storage.NewDiskSlot(cfg.DataDir, cfg.FavoritesKey)
	writer := storage.NewWriter(slot, logger)

	a := &app{
		gateway: gw,
		writer:  writer,
		logger:  logger,
	}
	a.writerWg.Add(1)
	go writer.Start(&a.writerWg)

	a.store = favorites.New(gw, slot, writer,
		favorites.WithLogger(logger),
		favorites.WithConcurrency(cfg.HydrateConcurrency),
	)
	a.view = view.New(gw, a.store, cfg.BaseURL, logger)
	return a, nil
}

// start loads the stored favorites; fetching them continues in the background.
func (a *app) start(ctx context.Context) {
	a.store.Rehydrate(ctx)
}

// load reads the stored favorites without fetching them, for commands that
// only change the stored list.
func (a *app) load() {
	a.store.Load()
}

// close flushes pending favorite writes.
func (a *app) close() {
	a.writer.Close()
	a.writerWg.Wait()
}
