package port

import (
	"context"
	"errors"

	"detect-bot/internal/domain/entity"
)

// ErrPredictionNotFound возвращается, когда записи с таким id нет.
var ErrPredictionNotFound = errors.New("prediction not found")

// PredictionRepository хранит завершённые записи детекции.
type PredictionRepository interface {
	// Save сохраняет запись.
	Save(ctx context.Context, p *entity.Prediction) error

	// GetByID возвращает запись по идентификатору запроса.
	GetByID(ctx context.Context, id string) (*entity.Prediction, error)
}
