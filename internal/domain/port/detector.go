package port

import (
	"context"

	"detect-bot/internal/domain/entity"
)

// ObjectDetector — движок детекции на стороне сервиса. Находит объекты
// на изображении и пишет размеченную копию в dstPath.
type ObjectDetector interface {
	Detect(ctx context.Context, srcPath, dstPath string) ([]entity.Label, error)
}
