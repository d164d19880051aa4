package port

import (
	"context"

	"detect-bot/internal/domain/entity"
)

// PhotoSource — входящая сторона шлюза: выдаёт байты фотографии.
type PhotoSource interface {
	// Download скачивает фото во временный файл и возвращает его путь.
	Download(ctx context.Context, ref entity.PhotoRef) (string, error)
}

// Replier — исходящая сторона шлюза: доставляет ответы в чат.
type Replier interface {
	// SendText отправляет текстовое сообщение.
	SendText(chatID int64, text string) error

	// SendPhoto отправляет фотографию из локального файла.
	SendPhoto(chatID int64, imagePath string) error
}
