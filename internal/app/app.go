// Package app wires configuration, transports, and the dispatch loop into a
// runnable bot.
package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"lingobot/internal/auth"
	"lingobot/internal/config"
	"lingobot/internal/core"
	"lingobot/internal/source"
	"lingobot/internal/store"
	"lingobot/internal/store/sqlite"
	"lingobot/internal/telegram"
	"lingobot/internal/translate"
	transporthttp "lingobot/internal/transport/http"
)

// App owns the running pieces of the bot: the dispatch loop, the webhook
// server in webhook mode, and the offset store in long-poll mode.
type App struct {
	dispatcher      *core.Dispatcher
	server          *stdhttp.Server // nil in long-poll mode
	queue           *source.Queue   // nil in long-poll mode
	offsets         store.OffsetStore
	shutdownTimeout time.Duration
	log             *zerolog.Logger
}

// New constructs the application with the provided configuration. Webhook
// registration happens here; its failure is fatal before any loop starts.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.AllowedChats) == 0 {
		logger.Warn().Msg("no chats are allowed to communicate with the bot")
	}

	tg, err := telegram.New(cfg.BotToken, logger)
	if err != nil {
		return nil, fmt.Errorf("init telegram client: %w", err)
	}
	logger.Info().Str("bot", tg.BotName()).Msg("authorized on telegram")

	authorizer := auth.New(cfg.AllowedChats, logger)
	translator := translate.New(cfg.GoogleAPIKey, logger)

	a := &App{
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}

	var src core.UpdateSource
	if cfg.WebhookMode {
		if err := tg.RegisterWebhook(cfg.WebhookURL()); err != nil {
			return nil, fmt.Errorf("register webhook: %w", err)
		}
		a.queue = source.NewQueue()
		a.server = transporthttp.NewServer(a.queue, cfg, logger)
		src = a.queue
	} else {
		// The platform refuses getUpdates while a webhook is registered.
		if err := tg.DeleteWebhook(); err != nil {
			return nil, fmt.Errorf("delete webhook: %w", err)
		}
		if cfg.DatabasePath != "" {
			st, err := sqlite.New(cfg.DatabasePath)
			if err != nil {
				return nil, fmt.Errorf("init offset store: %w", err)
			}
			a.offsets = st
			logger.Info().Str("db_path", cfg.DatabasePath).Msg("offset store initialized")
		}
		lp, err := source.NewLongPoll(tg, a.offsets, cfg.PollTimeout, logger)
		if err != nil {
			a.cleanup()
			return nil, fmt.Errorf("init long-poll source: %w", err)
		}
		src = lp
	}

	a.dispatcher = core.NewDispatcher(src, authorizer, translator, tg, tg.BotName(), logger)
	return a, nil
}

// Run blocks until context cancellation or a fatal error. Shutdown order in
// webhook mode: stop accepting HTTP requests (in-flight responses flush),
// close the queue, drain the dispatch loop, then release resources.
func (a *App) Run(ctx context.Context) error {
	if a.server == nil {
		err := a.dispatcher.Run(ctx)
		a.cleanup()
		return err
	}

	dispatchDone := make(chan error, 1)
	go func() {
		// The loop is driven by queue closure, not ctx, so queued events
		// drain after shutdown begins.
		dispatchDone <- a.dispatcher.Run(context.Background())
	}()

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.queue.Close()
		<-dispatchDone
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down webhook server")
		shutdownErr := a.server.Shutdown(shutdownCtx)

		a.queue.Close()
		dispatchErr := <-dispatchDone
		a.cleanup()

		if shutdownErr != nil {
			return shutdownErr
		}
		if dispatchErr != nil {
			return dispatchErr
		}
		return <-serverErr
	}
}

// cleanup releases resources held by the app.
func (a *App) cleanup() {
	if a.offsets != nil {
		if err := a.offsets.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close offset store")
		} else {
			a.log.Info().Msg("offset store closed")
		}
	}
}
