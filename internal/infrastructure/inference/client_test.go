package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"detect-bot/internal/domain/entity"
)

func TestClient_Predict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)
		require.Equal(t, "uploads/7/abc_photo.jpg", r.URL.Query().Get("imgName"))

		json.NewEncoder(w).Encode(entity.Prediction{
			ID:           "req-1",
			ImgKey:       "uploads/7/abc_photo.jpg",
			PredictedKey: "predictions/req-1_abc_photo.jpg",
			Labels:       []entity.Label{{Class: "person", CX: 0.5, CY: 0.5, Width: 0.2, Height: 0.4}},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	pred, err := client.Predict(context.Background(), "uploads/7/abc_photo.jpg")
	require.NoError(t, err)
	require.Equal(t, "req-1", pred.ID)
	require.Len(t, pred.Labels, 1)
	require.Equal(t, "person", pred.Labels[0].Class)
}

func TestClient_PredictNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Predict(context.Background(), "uploads/1/x.jpg")
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestClient_PredictDeadline(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := New(srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Predict(ctx, "uploads/1/x.jpg")
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded))

	<-started
}
