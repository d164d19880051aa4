package container

import (
	"time"

	"github.com/rs/zerolog"

	app "detect-bot/internal/application"
	"detect-bot/internal/domain/port"
)

// Container собирает сервисы бота из портов-коллабораторов.
type Container struct {
	FilterService    *app.FilterService
	DetectionService *app.DetectionService
	Dispatcher       *app.Dispatcher
}

// New строит граф сервисов для выбранного режима обработки.
func New(
	mode app.Mode,
	photos port.PhotoSource,
	replier port.Replier,
	store port.ObjectStore,
	predictor port.Predictor,
	filter port.ImageFilter,
	predictTimeout time.Duration,
	logger zerolog.Logger,
) *Container {
	filterService := app.NewFilterService(photos, filter, replier, logger)
	detectionService := app.NewDetectionService(photos, store, predictor, replier, predictTimeout, logger)
	dispatcher := app.NewDispatcher(mode, filterService, detectionService, replier, logger)

	return &Container{
		FilterService:    filterService,
		DetectionService: detectionService,
		Dispatcher:       dispatcher,
	}
}
