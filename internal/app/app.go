// Package app wires the bot, the indexing services and the storage backends
// together and runs them.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lueurxax/video-index-bot/internal/bindings"
	"github.com/lueurxax/video-index-bot/internal/bot"
	"github.com/lueurxax/video-index-bot/internal/indexing"
	"github.com/lueurxax/video-index-bot/internal/platform/config"
	"github.com/lueurxax/video-index-bot/internal/platform/observability"
	"github.com/lueurxax/video-index-bot/internal/storage"
)

const errBotInit = "bot initialization failed: %w"

var errBotNotRunning = errors.New("bot is not connected")

// App holds the application dependencies.
type App struct {
	cfg      *config.Config
	bindings *bindings.Registry
	indexer  *indexing.Service
	bot      atomic.Pointer[bot.Bot]
	logger   *zerolog.Logger
}

func New(cfg *config.Config, logger *zerolog.Logger) *App {
	registry := bindings.NewRegistry()
	opener := storage.NewOpener(storage.Options{MongoSelectionTimeout: cfg.StorageTimeout}, logger)

	logger.Info().Strs("schemes", opener.Schemes()).Msg("Storage backends registered")

	return &App{
		cfg:      cfg,
		bindings: registry,
		indexer: indexing.NewService(registry, opener, indexing.Config{
			StorageTimeout:    cfg.StorageTimeout,
			ProgressStepDelay: cfg.ProgressStepDelay,
		}, logger),
		logger: logger,
	}
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	srv := observability.NewServer(a.ready, a.cfg.HealthPort, a.logger)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("health server: %w", err)
	}

	return nil
}

// RunBot connects to Telegram and handles updates until ctx is canceled.
func (a *App) RunBot(ctx context.Context) error {
	a.logger.Info().Msg("Starting bot mode")

	b, err := bot.New(a.cfg, a.bindings, a.indexer, a.logger)
	if err != nil {
		return fmt.Errorf(errBotInit, err)
	}

	a.bot.Store(b)

	if err := b.Run(ctx); err != nil {
		return fmt.Errorf("bot run: %w", err)
	}

	return nil
}

func (a *App) ready(_ context.Context) error {
	if b := a.bot.Load(); b != nil && b.Ready() {
		return nil
	}

	return errBotNotRunning
}
