package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

const msgNoObjects = "🔍 Объекты не обнаружены."

// DetectionService — оркестратор детекции: пять последовательных шагов
// "скачать → загрузить в хранилище → детекция → забрать разметку →
// ответить". Шаги 1–3 фатальны, шаг 4 лишь деградирует ответ.
type DetectionService struct {
	photos    port.PhotoSource
	store     port.ObjectStore
	predictor port.Predictor
	replier   port.Replier
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewDetectionService создаёт оркестратор детекции. timeout ограничивает
// только вызов детекции — единственный шаг с долгим ожиданием.
func NewDetectionService(photos port.PhotoSource, store port.ObjectStore, predictor port.Predictor, replier port.Replier, timeout time.Duration, logger zerolog.Logger) *DetectionService {
	return &DetectionService{
		photos:    photos,
		store:     store,
		predictor: predictor,
		replier:   replier,
		timeout:   timeout,
		logger:    logger.With().Str("component", "detection").Logger(),
	}
}

// Run обрабатывает одну фотографию. Ошибка любого фатального шага
// прерывает цепочку без частичных ответов; деталь остаётся в логе,
// общий ответ об ошибке отправит диспетчер.
func (s *DetectionService) Run(ctx context.Context, chatID int64, ref entity.PhotoRef) error {
	log := s.logger.With().Int64("chat_id", chatID).Logger()

	// Шаг 1: получить байты фотографии у мессенджера.
	srcPath, err := s.photos.Download(ctx, ref)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquire, err)
	}

	// Шаг 2: выгрузить в хранилище под уникальным для попытки ключом.
	imgKey := stageKey(chatID, filepath.Base(srcPath))
	if err := s.store.Upload(ctx, imgKey, srcPath); err != nil {
		return fmt.Errorf("%w: %w", ErrStage, err)
	}
	log = log.With().Str("img_key", imgKey).Logger()
	log.Info().Msg("Photo staged")

	// Шаг 3: синхронный вызов детекции с дедлайном.
	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	pred, err := s.predictor.Predict(pctx, imgKey)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrInferenceTimeout, err)
		}
		return fmt.Errorf("%w: %w", ErrInference, err)
	}
	log = log.With().Str("prediction_id", pred.ID).Logger()
	log.Info().Int("labels", len(pred.Labels)).Msg("Prediction received")

	// Шаг 4: забрать размеченное изображение. Его отсутствие не
	// срывает ответ — текстовая сводка уходит в любом случае.
	annotatedPath := s.retrieveAnnotated(ctx, pred, filepath.Base(srcPath), log)

	// Шаг 5: ответить фотографией (если есть) и сводкой по классам.
	if annotatedPath != "" {
		if err := s.replier.SendPhoto(chatID, annotatedPath); err != nil {
			// Фото не дошло — сводку всё равно пытаемся доставить.
			log.Error().Err(err).Msg("Failed to deliver annotated photo")
		}
	}

	summary := pred.Summary()
	if summary == "" {
		summary = msgNoObjects
	}
	if err := s.replier.SendText(chatID, summary); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

func (s *DetectionService) retrieveAnnotated(ctx context.Context, pred *entity.Prediction, imgName string, log zerolog.Logger) string {
	key := pred.PredictedKey
	if key == "" {
		key = entity.PredictedImageKey(pred.ID, imgName)
	}

	localPath := filepath.Join(os.TempDir(), fmt.Sprintf("predicted_%s_%s", pred.ID, imgName))
	if err := s.store.Download(ctx, key, localPath); err != nil {
		log.Warn().Err(fmt.Errorf("%w: %w", ErrRetrieve, err)).Str("predicted_key", key).Msg("Annotated image is not available, replying with summary only")
		return ""
	}
	return localPath
}

// stageKey строит ключ исходного изображения: идентификатор чата
// разводит параллельные запросы разных чатов, случайный суффикс —
// повторные запросы одного чата.
func stageKey(chatID int64, imgName string) string {
	return fmt.Sprintf("uploads/%d/%s_%s", chatID, uuid.NewString(), imgName)
}
