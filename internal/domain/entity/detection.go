package entity

import (
	"fmt"
	"strings"
	"time"
)

// Label — один найденный объект. Координаты нормированы в [0,1]
// относительно размеров исходного изображения.
type Label struct {
	Class  string  `json:"class"`
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Prediction — итог одного запроса на детекцию.
type Prediction struct {
	ID           string    `json:"prediction_id"`
	ImgKey       string    `json:"original_img_key"`
	PredictedKey string    `json:"predicted_img_key"`
	Labels       []Label   `json:"labels"`
	Time         time.Time `json:"time"`
}

// PredictedImageKey строит ключ размеченного изображения в хранилище.
// Формат фиксирован контрактом детектора.
func PredictedImageKey(predictionID, imgName string) string {
	return fmt.Sprintf("predictions/%s_%s", predictionID, imgName)
}

// Summary агрегирует метки по классам и отдаёт по строке "класс: число"
// на каждый класс в порядке первого появления. Пустой список — пустая строка.
func (p Prediction) Summary() string {
	counts := make(map[string]int, len(p.Labels))
	order := make([]string, 0, len(p.Labels))
	for _, l := range p.Labels {
		if _, seen := counts[l.Class]; !seen {
			order = append(order, l.Class)
		}
		counts[l.Class]++
	}

	lines := make([]string, 0, len(order))
	for _, class := range order {
		lines = append(lines, fmt.Sprintf("%s: %d", class, counts[class]))
	}
	return strings.Join(lines, "\n")
}
