package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lingobot/internal/app"
	"lingobot/internal/config"
	"lingobot/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "lingobot",
		Short:         "Translation bot for Telegram chats",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// .env is optional; secrets usually arrive through the real
			// environment in deployments.
			_ = godotenv.Load()

			logLevel, _ := cmd.Flags().GetString("log-level")
			logJSON, _ := cmd.Flags().GetBool("log-json")
			logger := log.New(logLevel, logJSON)

			cfg, path, err := config.Load(logger, configPath)
			if err != nil {
				logger.Error().Err(err).Msg("failed to load config")
				return err
			}
			if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
				logger = log.New(cfg.LogLevel, cfg.LogJSON || logJSON)
			}
			logger.Info().Str("config", path).Msg("starting lingobot")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(cfg, logger)
			if err != nil {
				logger.Error().Err(err).Msg("startup failed")
				return err
			}

			if err := application.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("bot exited with error")
				return err
			}
			logger.Info().Msg("bot stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (optional).")
	cmd.Flags().String("log-level", "info", "Logging level: debug|info|warn|error.")
	cmd.Flags().Bool("log-json", false, "Emit JSON logs instead of console output.")

	return cmd
}
