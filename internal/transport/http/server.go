// Package http hosts the webhook bridge: the HTTP surface that accepts
// pushed platform updates and feeds them into the ingestion queue.
package http

import (
	"encoding/json"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"lingobot/internal/config"
	"lingobot/internal/source"
	"lingobot/internal/telegram"
)

// Bridge decodes pushed updates and enqueues them. It performs no business
// logic; responding 200 acknowledges receipt, not processing.
type Bridge struct {
	queue *source.Queue
	log   *zerolog.Logger
}

// NewServer builds the webhook HTTP server: the update route mounted at the
// token-derived webhook path plus a static health route.
func NewServer(queue *source.Queue, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	bridge := &Bridge{queue: queue, log: logger}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", healthHandler)
	router.POST(cfg.WebhookPath(), bridge.handleUpdate)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

// handleUpdate always answers 200: the platform retries non-2xx responses,
// and retrying a payload we cannot parse never helps.
func (b *Bridge) handleUpdate(c *gin.Context) {
	defer c.String(stdhttp.StatusOK, "ok")

	body, err := c.GetRawData()
	if err != nil {
		b.log.Error().Err(err).Msg("cannot read webhook body")
		return
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		b.log.Error().Err(err).Str("payload", string(body)).Msg("cannot parse update")
		return
	}

	if ev, ok := telegram.MapUpdate(update); ok {
		b.queue.Enqueue(ev)
	}
}
