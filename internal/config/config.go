package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// AllowedChat is one allow-list entry: a chat id and a display name used
// only for logging.
type AllowedChat struct {
	ID   int64  `mapstructure:"id" yaml:"id"`
	Name string `mapstructure:"name" yaml:"name"`
}

// Config holds bot configuration values.
type Config struct {
	BotToken     string        `mapstructure:"bot_token" yaml:"bot_token"`
	GoogleAPIKey string        `mapstructure:"google_api_key" yaml:"google_api_key"`
	AllowedChats []AllowedChat `mapstructure:"allowed_chats" yaml:"allowed_chats"`

	// WebhookMode switches ingestion from long-poll to the HTTP webhook bridge.
	WebhookMode   bool   `mapstructure:"webhook_mode" yaml:"webhook_mode"`
	WebhookDomain string `mapstructure:"webhook_domain" yaml:"webhook_domain"`
	Addr          string `mapstructure:"addr" yaml:"addr"`

	PollTimeout       int           `mapstructure:"poll_timeout" yaml:"poll_timeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// DatabasePath points at the sqlite file persisting the long-poll offset.
	// Empty keeps the offset in memory only.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogJSON  bool   `mapstructure:"log_json" yaml:"log_json"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		PollTimeout:       30,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
	}
}

var (
	ErrMissingBotToken = errors.New("bot token not specified")
	ErrMissingAPIKey   = errors.New("google api key not specified")
	ErrMissingDomain   = errors.New("webhook mode requires a public domain")
)

// Validate reports fatal configuration errors. An empty allow-list is not
// fatal; callers are expected to warn about it instead.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return ErrMissingBotToken
	}
	if c.GoogleAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.WebhookMode && c.WebhookDomain == "" {
		return ErrMissingDomain
	}
	return nil
}

// WebhookPath is the local route the platform posts updates to. Deriving it
// from the bot token makes the path unguessable without further auth. The
// token is hashed because its colon would read as a route parameter in the
// HTTP router.
func (c *Config) WebhookPath() string {
	sum := sha256.Sum256([]byte(c.BotToken))
	return "/updates/" + hex.EncodeToString(sum[:])
}

// WebhookURL is the public URL registered with the platform.
func (c *Config) WebhookURL() string {
	return "https://" + c.WebhookDomain + c.WebhookPath()
}
