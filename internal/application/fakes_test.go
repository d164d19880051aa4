package app

import (
	"context"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"detect-bot/internal/domain/entity"
)

type sentText struct {
	chatID int64
	text   string
}

type sentPhoto struct {
	chatID int64
	path   string
}

type fakeReplier struct {
	mu       sync.Mutex
	texts    []sentText
	photos   []sentPhoto
	textErr  error
	photoErr error
}

func (f *fakeReplier) SendText(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.textErr != nil {
		return f.textErr
	}
	f.texts = append(f.texts, sentText{chatID: chatID, text: text})
	return nil
}

func (f *fakeReplier) SendPhoto(chatID int64, imagePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.photoErr != nil {
		return f.photoErr
	}
	f.photos = append(f.photos, sentPhoto{chatID: chatID, path: imagePath})
	return nil
}

type fakePhotos struct {
	path string
	err  error
}

func (f *fakePhotos) Download(ctx context.Context, ref entity.PhotoRef) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

type fakeStore struct {
	mu          sync.Mutex
	uploads     []string
	downloads   []string
	uploadErr   error
	downloadErr error
}

func (f *fakeStore) Upload(ctx context.Context, key, localPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeStore) Download(ctx context.Context, key, localPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.downloadErr != nil {
		return f.downloadErr
	}
	f.downloads = append(f.downloads, key)
	return os.WriteFile(localPath, []byte("annotated"), 0o644)
}

type fakePredictor struct {
	pred *entity.Prediction
	err  error
}

func (f *fakePredictor) Predict(ctx context.Context, imgKey string) (*entity.Prediction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pred, nil
}

type fakeDetector struct {
	labels []entity.Label
	err    error
}

func (f *fakeDetector) Detect(ctx context.Context, srcPath, dstPath string) ([]entity.Label, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.labels, nil
}

type fakeRepo struct {
	saved []*entity.Prediction
	err   error
}

func (f *fakeRepo) Save(ctx context.Context, p *entity.Prediction) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*entity.Prediction, error) {
	for _, p := range f.saved {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, f.err
}

// writeGarbageFile кладёт файл, который не является изображением.
func writeGarbageFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "not-an-image.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	return path
}

// writeTestJPEG кладёт небольшой jpeg во временный каталог теста.
func writeTestJPEG(t *testing.T, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 12))
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, jpeg.Encode(f, img, nil))
	return path
}
