package main

import (
	"os"

	"github.com/rs/zerolog"

	"detect-bot/config"
	"detect-bot/internal/api/httpapi"
	app "detect-bot/internal/application"
	"detect-bot/internal/infrastructure/objectstore"
	"detect-bot/internal/infrastructure/storage"
	"detect-bot/internal/infrastructure/vision"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	if cfg.BucketName == "" {
		logger.Fatal().Msg("BUCKET_NAME is required")
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

	names, err := vision.LoadNames(cfg.NamesPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load class names")
	}

	detector, err := vision.NewYoloDetector(cfg.WeightsPath, names)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create detector")
	}
	defer detector.Close()

	db, err := storage.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	repo := storage.NewPredictionRepository(db)

	predicts := app.NewPredictService(store, detector, repo, logger)
	server := httpapi.NewServer(predicts, repo, logger)

	logger.Info().Str("addr", cfg.ListenAddr).Msg("Detector service is running")
	if err := server.Run(cfg.ListenAddr); err != nil {
		logger.Fatal().Err(err).Msg("Server stopped with error")
	}
}
