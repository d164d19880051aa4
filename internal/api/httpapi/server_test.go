package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	app "detect-bot/internal/application"
	"detect-bot/internal/domain/entity"
	"detect-bot/internal/domain/port"
)

type stubStore struct {
	downloadErr error
}

func (s *stubStore) Upload(ctx context.Context, key, localPath string) error {
	return nil
}

func (s *stubStore) Download(ctx context.Context, key, localPath string) error {
	if s.downloadErr != nil {
		return s.downloadErr
	}
	return os.WriteFile(localPath, []byte("img"), 0o644)
}

type stubDetector struct {
	labels []entity.Label
}

func (s *stubDetector) Detect(ctx context.Context, srcPath, dstPath string) ([]entity.Label, error) {
	return s.labels, nil
}

type stubRepo struct {
	preds map[string]*entity.Prediction
}

func (s *stubRepo) Save(ctx context.Context, p *entity.Prediction) error {
	if s.preds == nil {
		s.preds = make(map[string]*entity.Prediction)
	}
	s.preds[p.ID] = p
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, id string) (*entity.Prediction, error) {
	if p, ok := s.preds[id]; ok {
		return p, nil
	}
	return nil, port.ErrPredictionNotFound
}

func newTestServer(store port.ObjectStore, detector port.ObjectDetector, repo port.PredictionRepository) *Server {
	gin.SetMode(gin.TestMode)
	predicts := app.NewPredictService(store, detector, repo, zerolog.Nop())
	return NewServer(predicts, repo, zerolog.Nop())
}

func TestServer_PredictMissingParam(t *testing.T) {
	srv := newTestServer(&stubStore{}, &stubDetector{}, &stubRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_PredictOK(t *testing.T) {
	detector := &stubDetector{labels: []entity.Label{{Class: "person", CX: 0.5, CY: 0.5, Width: 0.2, Height: 0.4}}}
	repo := &stubRepo{}
	srv := newTestServer(&stubStore{}, detector, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict?imgName=uploads%2F7%2Fabc_photo.jpg", nil)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var pred entity.Prediction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pred))
	require.NotEmpty(t, pred.ID)
	require.Equal(t, "uploads/7/abc_photo.jpg", pred.ImgKey)
	require.Len(t, pred.Labels, 1)
	require.Equal(t, "person", pred.Labels[0].Class)

	// Запись сохранилась и доступна по id.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/predictions/"+pred.ID, nil)
	srv.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestServer_PredictSourceMissing(t *testing.T) {
	srv := newTestServer(&stubStore{downloadErr: port.ErrStoreNotFound}, &stubDetector{}, &stubRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict?imgName=uploads%2F7%2Fmissing.jpg", nil)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_GetPredictionMissing(t *testing.T) {
	srv := newTestServer(&stubStore{}, &stubDetector{}, &stubRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/predictions/absent", nil)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(&stubStore{}, &stubDetector{}, &stubRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
