package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

// PredictService — оркестратор на стороне сервиса детекции: скачать
// исходник из хранилища, прогнать детектор, выгрузить размеченную
// копию, сохранить запись и вернуть её вызывающему.
type PredictService struct {
	store    port.ObjectStore
	detector port.ObjectDetector
	repo     port.PredictionRepository // nil отключает персистентность
	logger   zerolog.Logger
}

// NewPredictService создаёт оркестратор детекции на стороне сервиса.
func NewPredictService(store port.ObjectStore, detector port.ObjectDetector, repo port.PredictionRepository, logger zerolog.Logger) *PredictService {
	return &PredictService{
		store:    store,
		detector: detector,
		repo:     repo,
		logger:   logger.With().Str("component", "predict").Logger(),
	}
}

// Run обрабатывает один запрос на детекцию изображения imgKey.
// Пустой список меток — успех, а не ошибка: отсутствие объектов
// тоже результат.
func (s *PredictService) Run(ctx context.Context, imgKey string) (*entity.Prediction, error) {
	id := uuid.NewString()
	log := s.logger.With().Str("prediction_id", id).Str("img_key", imgKey).Logger()
	log.Info().Msg("Start processing")

	imgName := filepath.Base(imgKey)
	workDir, err := os.MkdirTemp("", "predict-"+id)
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}

	srcPath := filepath.Join(workDir, imgName)
	if err := s.store.Download(ctx, imgKey, srcPath); err != nil {
		return nil, fmt.Errorf("download %s: %w", imgKey, err)
	}

	annotatedPath := filepath.Join(workDir, "predicted_"+imgName)
	labels, err := s.detector.Detect(ctx, srcPath, annotatedPath)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	log.Info().Int("labels", len(labels)).Msg("Detection finished")

	predictedKey := entity.PredictedImageKey(id, imgName)
	if err := s.store.Upload(ctx, predictedKey, annotatedPath); err != nil {
		return nil, fmt.Errorf("upload %s: %w", predictedKey, err)
	}

	pred := &entity.Prediction{
		ID:           id,
		ImgKey:       imgKey,
		PredictedKey: predictedKey,
		Labels:       labels,
		Time:         time.Now().UTC(),
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, pred); err != nil {
			return nil, fmt.Errorf("save prediction: %w", err)
		}
	}

	return pred, nil
}
