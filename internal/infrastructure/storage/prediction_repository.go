package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

// predictionRecord — строка таблицы predictions. Метки хранятся
// сериализованным JSON: их структура нужна только приложению.
type predictionRecord struct {
	ID           string `gorm:"primaryKey"`
	ImgKey       string
	PredictedKey string
	Labels       string
	CreatedAt    time.Time
}

func (predictionRecord) TableName() string {
	return "predictions"
}

// OpenDB открывает sqlite-базу и накатывает схему.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&predictionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// PredictionRepository хранит записи детекции в реляционной базе.
type PredictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository создаёт репозиторий поверх открытой базы.
func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Save сохраняет запись детекции.
func (r *PredictionRepository) Save(ctx context.Context, p *entity.Prediction) error {
	labels, err := json.Marshal(p.Labels)
	if err != nil {
		return fmt.Errorf("marshal labels: %w", err)
	}

	record := predictionRecord{
		ID:           p.ID,
		ImgKey:       p.ImgKey,
		PredictedKey: p.PredictedKey,
		Labels:       string(labels),
		CreatedAt:    p.Time,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("insert prediction %s: %w", p.ID, err)
	}
	return nil
}

// GetByID возвращает запись по идентификатору запроса.
func (r *PredictionRepository) GetByID(ctx context.Context, id string) (*entity.Prediction, error) {
	var record predictionRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, port.ErrPredictionNotFound
		}
		return nil, fmt.Errorf("select prediction %s: %w", id, err)
	}

	var labels []entity.Label
	if err := json.Unmarshal([]byte(record.Labels), &labels); err != nil {
		return nil, fmt.Errorf("unmarshal labels of %s: %w", id, err)
	}

	return &entity.Prediction{
		ID:           record.ID,
		ImgKey:       record.ImgKey,
		PredictedKey: record.PredictedKey,
		Labels:       labels,
		Time:         record.CreatedAt,
	}, nil
}

// Проверка реализации интерфейса
var _ port.PredictionRepository = (*PredictionRepository)(nil)
