package port

import (
	"image"

	"detect-bot/internal/domain/entity"
)

// ImageFilter применяет именованное преобразование к изображению.
// Реализация не знает, откуда изображение взялось и куда уйдёт.
type ImageFilter interface {
	Transform(kind entity.FilterKind, img image.Image) (image.Image, error)
}
