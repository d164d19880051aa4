package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

// Handler обрабатывает одно входящее сообщение от начала до конца.
type Handler interface {
	Handle(ctx context.Context, msg entity.InboundMessage)
}

// Bot — шлюз к Telegram: принимает сообщения через long polling и
// отдаёт ответы. Ядро видит его только как port.PhotoSource и
// port.Replier.
type Bot struct {
	api    *tgbotapi.BotAPI
	logger zerolog.Logger
}

// NewBot создаёт шлюз и проверяет токен.
func NewBot(token string, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info().Str("username", api.Self.UserName).Msg("Authorized on Telegram")

	return &Bot{
		api:    api,
		logger: logger.With().Str("component", "telegram").Logger(),
	}, nil
}

// Run запускает цикл получения сообщений и блокируется до отмены
// контекста. Каждое сообщение обрабатывается в своей горутине:
// мессенджер доставляет чаты параллельно, ядро к этому готово.
func (b *Bot) Run(ctx context.Context, handler Handler) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			msg := toInbound(update.Message)
			go handler.Handle(ctx, msg)
		}
	}
}

// toInbound переводит сообщение Telegram во внутреннее представление.
func toInbound(msg *tgbotapi.Message) entity.InboundMessage {
	inbound := entity.InboundMessage{
		ChatID:  msg.Chat.ID,
		Text:    msg.Text,
		Caption: msg.Caption,
	}

	if len(msg.Photo) > 0 {
		// Telegram присылает несколько размеров, берём максимальный.
		photo := msg.Photo[len(msg.Photo)-1]
		inbound.Photo = &entity.PhotoRef{
			FileID:   photo.FileID,
			FileSize: int64(photo.FileSize),
			Width:    photo.Width,
			Height:   photo.Height,
		}
	}
	return inbound
}

// Download скачивает фото во временный файл и возвращает его путь.
func (b *Bot) Download(ctx context.Context, ref entity.PhotoRef) (string, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: ref.FileID})
	if err != nil {
		return "", fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	dir, err := os.MkdirTemp("", "tgphoto")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	localPath := filepath.Join(dir, filepath.Base(file.FilePath))
	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("create local file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("write local file: %w", err)
	}

	return localPath, nil
}

// SendText отправляет текстовое сообщение в чат.
func (b *Bot) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send text to chat %d: %w", chatID, err)
	}
	return nil
}

// SendPhoto отправляет фотографию из локального файла в чат.
func (b *Bot) SendPhoto(chatID int64, imagePath string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(imagePath))
	if _, err := b.api.Send(photo); err != nil {
		return fmt.Errorf("send photo to chat %d: %w", chatID, err)
	}
	return nil
}

// Проверка реализации портов шлюза
var (
	_ port.PhotoSource = (*Bot)(nil)
	_ port.Replier     = (*Bot)(nil)
)
