package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envConfigDefaultPath = "LINGOBOT_CONFIG_DEFAULT_PATH"
	defaultConfigName    = "config.yaml"

	// Secrets may be injected through the environment directly; they win
	// over file values so deployments never have to write tokens to disk.
	envBotToken     = "TELEGRAM_BOT_TOKEN"
	envAPIKey       = "GOOGLE_CLOUD_API_KEY"
	envAllowedChats = "ALLOWED_CHAT_IDS"
)

// Load builds configuration from defaults, optional config file, env vars, and returns the resolved path.
// Precedence: defaults < config file < env vars.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("poll_timeout", cfg.PollTimeout)
	v.SetDefault("read_header_timeout", cfg.ReadHeaderTimeout)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)
	v.SetDefault("log_level", cfg.LogLevel)

	v.SetEnvPrefix("LINGOBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := resolveConfigPath(explicitPath)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			if writeErr := writeDefaultConfig(configPath, cfg); writeErr != nil && logger != nil {
				logger.Warn().Err(writeErr).Str("path", configPath).Msg("failed to write default config")
			} else if logger != nil {
				logger.Info().Str("path", configPath).Msg("created default config")
			}
			// try reading again in case it was just written
			if readErr := v.ReadInConfig(); readErr != nil && logger != nil {
				logger.Warn().Err(readErr).Str("path", configPath).Msg("failed to read config after writing default")
			}
		} else {
			return cfg, configPath, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, configPath, fmt.Errorf("unmarshal config: %w", err)
	}

	applySecretEnv(logger, &cfg)

	return cfg, configPath, nil
}

// applySecretEnv overrides file-sourced values with secrets from the
// environment, warning when that happens so operators can tell which source
// is live.
func applySecretEnv(logger *zerolog.Logger, cfg *Config) {
	if token := os.Getenv(envBotToken); token != "" {
		if logger != nil {
			logger.Warn().Msgf("%s is set in the environment", envBotToken)
		}
		cfg.BotToken = token
	}
	if key := os.Getenv(envAPIKey); key != "" {
		if logger != nil {
			logger.Warn().Msgf("%s is set in the environment", envAPIKey)
		}
		cfg.GoogleAPIKey = key
	}
	if csv := os.Getenv(envAllowedChats); csv != "" {
		if chats := parseAllowedChats(csv); len(chats) > 0 {
			cfg.AllowedChats = chats
		}
	}
}

// parseAllowedChats reads a comma-separated id list; entries that fail to
// parse are skipped.
func parseAllowedChats(csv string) []AllowedChat {
	var chats []AllowedChat
	for _, part := range strings.Split(csv, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		chats = append(chats, AllowedChat{ID: id})
	}
	return chats
}

func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if base := os.Getenv(envConfigDefaultPath); base != "" {
		if err := os.MkdirAll(base, 0o755); err == nil {
			return filepath.Join(base, defaultConfigName)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(cwd, defaultConfigName)
}

func writeDefaultConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
