package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

func TestPredictService_RunHappyPath(t *testing.T) {
	store := &fakeStore{}
	detector := &fakeDetector{labels: []entity.Label{{Class: "person", CX: 0.4, CY: 0.5, Width: 0.1, Height: 0.3}}}
	repo := &fakeRepo{}
	svc := NewPredictService(store, detector, repo, zerolog.Nop())

	pred, err := svc.Run(context.Background(), "uploads/7/abc_photo.jpg")
	require.NoError(t, err)
	require.NotEmpty(t, pred.ID)
	require.Equal(t, "uploads/7/abc_photo.jpg", pred.ImgKey)
	require.Len(t, pred.Labels, 1)

	// Ключ разметки следует соглашению predictions/{id}_{имя файла}.
	require.Equal(t, fmt.Sprintf("predictions/%s_abc_photo.jpg", pred.ID), pred.PredictedKey)
	require.Equal(t, []string{pred.PredictedKey}, store.uploads)

	// Запись сохранена.
	require.Len(t, repo.saved, 1)
	require.Equal(t, pred.ID, repo.saved[0].ID)
}

func TestPredictService_ZeroLabelsIsSuccess(t *testing.T) {
	svc := NewPredictService(&fakeStore{}, &fakeDetector{}, nil, zerolog.Nop())

	pred, err := svc.Run(context.Background(), "uploads/1/x_img.jpg")
	require.NoError(t, err)
	require.Empty(t, pred.Labels)
}

func TestPredictService_SourceMissing(t *testing.T) {
	store := &fakeStore{downloadErr: port.ErrStoreNotFound}
	svc := NewPredictService(store, &fakeDetector{}, nil, zerolog.Nop())

	_, err := svc.Run(context.Background(), "uploads/1/x_img.jpg")
	require.ErrorIs(t, err, port.ErrStoreNotFound)
}

func TestPredictService_SaveFailureIsTerminal(t *testing.T) {
	repo := &fakeRepo{err: context.Canceled}
	svc := NewPredictService(&fakeStore{}, &fakeDetector{}, repo, zerolog.Nop())

	_, err := svc.Run(context.Background(), "uploads/1/x_img.jpg")
	require.Error(t, err)
}
