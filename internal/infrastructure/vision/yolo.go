//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"detect-bot/internal/domain/entity"
)

// YoloDetector — детектор объектов на YOLOv5 (ONNX) через DNN-модуль
// OpenCV.
type YoloDetector struct {
	net   gocv.Net
	names []string

	InputSize      int
	ScoreThreshold float32
	NMSThreshold   float32
}

// NewYoloDetector загружает сеть из ONNX-файла.
func NewYoloDetector(weightsPath string, names []string) (*YoloDetector, error) {
	net := gocv.ReadNetFromONNX(weightsPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network from %s", weightsPath)
	}

	return &YoloDetector{
		net:            net,
		names:          names,
		InputSize:      640,
		ScoreThreshold: 0.45,
		NMSThreshold:   0.5,
	}, nil
}

// Close освобождает ресурсы сети.
func (d *YoloDetector) Close() error {
	return d.net.Close()
}

// Detect находит объекты на изображении srcPath, пишет размеченную
// копию в dstPath и возвращает метки с нормированными координатами.
func (d *YoloDetector) Detect(ctx context.Context, srcPath, dstPath string) ([]entity.Label, error) {
	_ = ctx

	img := gocv.IMRead(srcPath, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		return nil, errors.New("failed to decode image")
	}

	imgW := float64(img.Cols())
	imgH := float64(img.Rows())

	blob := gocv.BlobFromImage(img, 1.0/255.0, image.Pt(d.InputSize, d.InputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	defer output.Close()

	boxes, scores, classIDs, err := d.parseOutput(output, imgW, imgH)
	if err != nil {
		return nil, err
	}

	indices := gocv.NMSBoxes(boxes, scores, d.ScoreThreshold, d.NMSThreshold)

	green := color.RGBA{G: 255, A: 255}
	labels := make([]entity.Label, 0, len(indices))
	for _, idx := range indices {
		rect := boxes[idx]
		class := d.className(classIDs[idx])

		gocv.Rectangle(&img, rect, green, 2)
		gocv.PutText(&img, class, image.Pt(rect.Min.X, rect.Min.Y-6), gocv.FontHersheySimplex, 0.6, green, 2)

		labels = append(labels, entity.Label{
			Class:  class,
			CX:     (float64(rect.Min.X) + float64(rect.Dx())/2) / imgW,
			CY:     (float64(rect.Min.Y) + float64(rect.Dy())/2) / imgH,
			Width:  float64(rect.Dx()) / imgW,
			Height: float64(rect.Dy()) / imgH,
		})
	}

	if ok := gocv.IMWrite(dstPath, img); !ok {
		return nil, fmt.Errorf("failed to write annotated image to %s", dstPath)
	}

	return labels, nil
}

// parseOutput разбирает выход YOLOv5 формы [1, N, 5+классы] и
// переводит рамки из координат входного блоба в координаты исходника.
func (d *YoloDetector) parseOutput(output gocv.Mat, imgW, imgH float64) ([]image.Rectangle, []float32, []int, error) {
	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read network output: %w", err)
	}

	sizes := output.Size()
	if len(sizes) < 3 {
		return nil, nil, nil, fmt.Errorf("unexpected output shape %v", sizes)
	}
	rows := sizes[1]
	cols := sizes[2]

	scaleX := imgW / float64(d.InputSize)
	scaleY := imgH / float64(d.InputSize)

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int

	for i := 0; i < rows; i++ {
		row := data[i*cols : (i+1)*cols]
		objectness := row[4]
		if objectness < d.ScoreThreshold {
			continue
		}

		classID := 0
		best := float32(0)
		for c := 5; c < cols; c++ {
			if row[c] > best {
				best = row[c]
				classID = c - 5
			}
		}

		score := objectness * best
		if score < d.ScoreThreshold {
			continue
		}

		cx := float64(row[0]) * scaleX
		cy := float64(row[1]) * scaleY
		w := float64(row[2]) * scaleX
		h := float64(row[3]) * scaleY

		boxes = append(boxes, image.Rect(int(cx-w/2), int(cy-h/2), int(cx+w/2), int(cy+h/2)))
		scores = append(scores, score)
		classIDs = append(classIDs, classID)
	}

	return boxes, scores, classIDs, nil
}

func (d *YoloDetector) className(id int) string {
	if id >= 0 && id < len(d.names) {
		return d.names[id]
	}
	return fmt.Sprintf("class_%d", id)
}
