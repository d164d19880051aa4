package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

// Mode — стратегия обработки фотографий, выбранная при деплое.
// Режимы взаимоисключающие: либо фильтры по подписи, либо детекция.
type Mode string

const (
	ModeFilter    Mode = "filter"
	ModeDetection Mode = "detection"
)

const (
	msgEcho            = "Ваше исходное сообщение: %s"
	msgNoCaption       = "📷 Фото получено без подписи."
	msgUnknownCommand  = "❓ Неизвестная команда: %s"
	msgProcessingError = "⚠️ Произошла ошибка при обработке изображения."
)

// Dispatcher классифицирует входящие сообщения и направляет их
// к нужному оркестратору. Потокобезопасен: состояния между
// сообщениями не держит.
type Dispatcher struct {
	mode       Mode
	filters    *FilterService
	detections *DetectionService
	replier    port.Replier
	logger     zerolog.Logger
}

// NewDispatcher создаёт диспетчер для выбранного режима.
func NewDispatcher(mode Mode, filters *FilterService, detections *DetectionService, replier port.Replier, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		mode:       mode,
		filters:    filters,
		detections: detections,
		replier:    replier,
		logger:     logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Classify выбирает ровно один вариант команды для сообщения.
// Чистая функция: без побочных эффектов и ввода-вывода.
func (d *Dispatcher) Classify(msg entity.InboundMessage) entity.Command {
	if !msg.HasPhoto() {
		return entity.Command{Kind: entity.CommandPlainText, Text: msg.Text}
	}

	// В режиме детекции любое фото уходит на детекцию, подпись игнорируется.
	if d.mode == ModeDetection {
		return entity.Command{Kind: entity.CommandDetect}
	}

	if kind, ok := entity.ParseFilterKind(msg.Caption); ok {
		return entity.Command{Kind: entity.CommandFilter, Filter: kind}
	}
	if msg.Caption == "" {
		return entity.Command{Kind: entity.CommandNoCaption}
	}
	return entity.Command{Kind: entity.CommandUnknownCaption, Caption: msg.Caption}
}

// Handle обрабатывает одно сообщение от начала до конца. Инвариант:
// каждый путь заканчивается ровно одной попыткой ответа в чат —
// любая ошибка (включая панику оркестратора) превращается в общий
// ответ об ошибке, детали остаются в логах.
func (d *Dispatcher) Handle(ctx context.Context, msg entity.InboundMessage) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Int64("chat_id", msg.ChatID).Interface("panic", r).Msg("Recovered from panic while handling message")
			d.replyError(msg.ChatID)
		}
	}()

	cmd := d.Classify(msg)
	d.logger.Info().Int64("chat_id", msg.ChatID).Str("command", string(cmd.Kind)).Msg("Incoming message classified")

	var err error
	switch cmd.Kind {
	case entity.CommandPlainText:
		err = d.sendText(msg.ChatID, fmt.Sprintf(msgEcho, cmd.Text))
	case entity.CommandNoCaption:
		err = d.sendText(msg.ChatID, msgNoCaption)
	case entity.CommandUnknownCaption:
		err = d.sendText(msg.ChatID, fmt.Sprintf(msgUnknownCommand, cmd.Caption))
	case entity.CommandFilter:
		_, err = d.filters.Run(ctx, msg.ChatID, *msg.Photo, cmd.Filter)
	case entity.CommandDetect:
		err = d.detections.Run(ctx, msg.ChatID, *msg.Photo)
	}

	if err == nil {
		return
	}

	d.logger.Error().Err(err).Int64("chat_id", msg.ChatID).Str("command", string(cmd.Kind)).Msg("Message processing failed")

	// Если упала сама доставка, повторный ответ не шлём: транспорт
	// недоступен, а ответ уже был отправлен или пытался отправиться.
	if errors.Is(err, ErrDelivery) {
		return
	}
	d.replyError(msg.ChatID)
}

func (d *Dispatcher) sendText(chatID int64, text string) error {
	if err := d.replier.SendText(chatID, text); err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return nil
}

func (d *Dispatcher) replyError(chatID int64) {
	if err := d.replier.SendText(chatID, msgProcessingError); err != nil {
		d.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to deliver error reply")
	}
}
