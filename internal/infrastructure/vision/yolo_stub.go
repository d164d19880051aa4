//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"detect-bot/internal/domain/entity"
)

// YoloDetector — заглушка детектора для сборки без OpenCV.
type YoloDetector struct {
	names []string

	InputSize      int
	ScoreThreshold float32
	NMSThreshold   float32
}

// NewYoloDetector создаёт заглушку (без OpenCV).
func NewYoloDetector(weightsPath string, names []string) (*YoloDetector, error) {
	_ = weightsPath
	return &YoloDetector{
		names:          names,
		InputSize:      640,
		ScoreThreshold: 0.45,
		NMSThreshold:   0.5,
	}, nil
}

// Close ничего не освобождает в заглушке.
func (d *YoloDetector) Close() error {
	return nil
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *YoloDetector) Detect(ctx context.Context, srcPath, dstPath string) ([]entity.Label, error) {
	_ = ctx
	_ = srcPath
	_ = dstPath
	return nil, errors.New("gocv build tag is not enabled")
}
