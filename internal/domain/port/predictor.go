package port

import (
	"context"

	"detect-bot/internal/domain/entity"
)

// Predictor — клиент удалённого сервиса детекции. Вызов синхронный и
// может занимать заметное время; дедлайн задаёт вызывающая сторона
// через контекст.
type Predictor interface {
	// Predict запускает детекцию для изображения, лежащего в хранилище
	// под ключом imgKey, и возвращает итоговую запись.
	Predict(ctx context.Context, imgKey string) (*entity.Prediction, error)
}
