// Package telegram wraps the Bot API client behind the small surface the
// rest of the bot needs: pulling updates, sending replies, and webhook
// registration.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Client talks to the Telegram Bot API.
type Client struct {
	api *tgbotapi.BotAPI
	log *zerolog.Logger
}

// New authenticates against the Bot API with the given token.
func New(token string, logger *zerolog.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &Client{api: api, log: logger}, nil
}

// NewWithEndpoint authenticates against a custom API endpoint (for testing).
func NewWithEndpoint(token, endpoint string, logger *zerolog.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &Client{api: api, log: logger}, nil
}

// BotName is the bot's username, used to match @mention command suffixes.
func (c *Client) BotName() string {
	return c.api.Self.UserName
}

// Pull issues one blocking getUpdates call. The underlying client enforces
// its own HTTP timeout slightly above the long-poll timeout.
func (c *Client) Pull(offset, timeout int) ([]tgbotapi.Update, error) {
	updates, err := c.api.GetUpdates(tgbotapi.UpdateConfig{
		Offset:  offset,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("get updates: %w", err)
	}
	return updates, nil
}

// Send posts text to a chat, threaded under replyTo when non-zero. The Bot
// API client does not take a context; its HTTP timeout bounds the call.
func (c *Client) Send(_ context.Context, chatID int64, text string, replyTo int) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
	}
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// RegisterWebhook registers the public URL with the platform. This is a
// startup precondition and is never retried; callers treat failure as fatal.
func (c *Client) RegisterWebhook(publicURL string) error {
	wh, err := tgbotapi.NewWebhook(publicURL)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := c.api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	c.log.Info().Msg("webhook registered")
	return nil
}

// DeleteWebhook removes any registered webhook. Long-poll mode calls this at
// startup because the platform refuses getUpdates while a webhook is set.
func (c *Client) DeleteWebhook() error {
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	return nil
}
