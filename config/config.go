package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Режимы обработки фотографий. Деплой выбирает ровно один.
const (
	ModeFilter    = "filter"
	ModeDetection = "detection"
)

// Config собирает настройки обоих процессов (бота и детектора).
type Config struct {
	TelegramToken string
	Mode          string // filter | detection

	BucketName     string
	StoreEndpoint  string
	StoreAccessKey string
	StoreSecretKey string
	StoreUseSSL    bool

	DetectorURL    string
	PredictTimeout time.Duration

	DatabaseDSN string
	ListenAddr  string

	WeightsPath string
	NamesPath   string
}

// Load читает настройки из окружения (и .env файла, если он есть).
func Load() (*Config, error) {
	// Игнорируем ошибку: .env нужен только для локального запуска.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Mode:           getEnv("MODE", ModeDetection),
		BucketName:     os.Getenv("BUCKET_NAME"),
		StoreEndpoint:  getEnv("STORE_ENDPOINT", "localhost:9000"),
		StoreAccessKey: os.Getenv("STORE_ACCESS_KEY"),
		StoreSecretKey: os.Getenv("STORE_SECRET_KEY"),
		DetectorURL:    getEnv("DETECTOR_URL", "http://localhost:8081"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "predictions.db"),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8081"),
		WeightsPath:    getEnv("WEIGHTS_PATH", "yolov5s.onnx"),
		NamesPath:      getEnv("NAMES_PATH", "data/coco128.yaml"),
	}

	if cfg.Mode != ModeFilter && cfg.Mode != ModeDetection {
		return nil, fmt.Errorf("unknown MODE %q: expected %q or %q", cfg.Mode, ModeFilter, ModeDetection)
	}

	useSSL, err := strconv.ParseBool(getEnv("STORE_USE_SSL", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_USE_SSL: %w", err)
	}
	cfg.StoreUseSSL = useSSL

	timeoutSec, err := strconv.Atoi(getEnv("PREDICT_TIMEOUT_SEC", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid PREDICT_TIMEOUT_SEC: %w", err)
	}
	cfg.PredictTimeout = time.Duration(timeoutSec) * time.Second

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
