package app

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // поддержка png при декодировании
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

// FilterService — оркестратор фильтров: скачать фото, применить
// именованное преобразование, отправить результат обратно в чат.
// Пиксельные алгоритмы живут за портом ImageFilter.
type FilterService struct {
	photos  port.PhotoSource
	filter  port.ImageFilter
	replier port.Replier
	logger  zerolog.Logger
}

// NewFilterService создаёт оркестратор фильтров.
func NewFilterService(photos port.PhotoSource, filter port.ImageFilter, replier port.Replier, logger zerolog.Logger) *FilterService {
	return &FilterService{
		photos:  photos,
		filter:  filter,
		replier: replier,
		logger:  logger.With().Str("component", "filter").Logger(),
	}
}

// Run выполняет цепочку "скачать → преобразовать → сохранить → ответить"
// и возвращает путь к сохранённому результату. Частичных ответов нет:
// при ошибке преобразования в чат не уходит ничего (ответит диспетчер).
func (s *FilterService) Run(ctx context.Context, chatID int64, ref entity.PhotoRef, kind entity.FilterKind) (string, error) {
	log := s.logger.With().Int64("chat_id", chatID).Str("filter", string(kind)).Logger()

	srcPath, err := s.photos.Download(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAcquire, err)
	}

	img, err := loadImage(srcPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransform, err)
	}

	out, err := s.filter.Transform(kind, img)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransform, err)
	}

	outPath := filteredPath(srcPath)
	if err := saveImage(outPath, out); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransform, err)
	}
	log.Info().Str("path", outPath).Msg("Filter applied")

	if err := s.replier.SendPhoto(chatID, outPath); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return outPath, nil
}

func filteredPath(srcPath string) string {
	dir, name := filepath.Split(srcPath)
	return filepath.Join(dir, "filtered_"+name)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func saveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}
