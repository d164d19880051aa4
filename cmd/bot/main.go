package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"detect-bot/config"
	telegram "detect-bot/internal/api"
	app "detect-bot/internal/application"
	"detect-bot/internal/container"
	"detect-bot/internal/infrastructure/imaging"
	"detect-bot/internal/infrastructure/inference"
	"detect-bot/internal/infrastructure/objectstore"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	if cfg.TelegramToken == "" {
		logger.Fatal().Msg("TELEGRAM_TOKEN is required")
	}

	store, err := objectstore.New(objectstore.Config{
		Endpoint:  cfg.StoreEndpoint,
		AccessKey: cfg.StoreAccessKey,
		SecretKey: cfg.StoreSecretKey,
		UseSSL:    cfg.StoreUseSSL,
		Bucket:    cfg.BucketName,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create object store client")
	}

	bot, err := telegram.NewBot(cfg.TelegramToken, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create bot")
	}

	c := container.New(
		app.Mode(cfg.Mode),
		bot,
		bot,
		store,
		inference.New(cfg.DetectorURL),
		imaging.NewFilter(),
		cfg.PredictTimeout,
		logger,
	)

	logger.Info().Str("mode", cfg.Mode).Dur("predict_timeout", cfg.PredictTimeout).Msg("Bot is running")
	if err := bot.Run(context.Background(), c.Dispatcher); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("Bot stopped with error")
	}
}
