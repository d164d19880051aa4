package objectstore

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"detect-bot/internal/domain/port"
)

// Config — подключение к S3-совместимому хранилищу.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Client — адаптер ObjectStore поверх S3-совместимого API.
type Client struct {
	client *minio.Client
	bucket string
}

// New создаёт клиент хранилища объектов.
func New(cfg Config) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}

	return &Client{client: client, bucket: cfg.Bucket}, nil
}

// Upload кладёт локальный файл под указанным ключом.
func (c *Client) Upload(ctx context.Context, key, localPath string) error {
	_, err := c.client.FPutObject(ctx, c.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

// Download забирает объект по ключу в локальный файл.
func (c *Client) Download(ctx context.Context, key, localPath string) error {
	if err := c.client.FGetObject(ctx, c.bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return classify(err)
	}
	return nil
}

// classify переводит ошибку S3 в sentinel-ы порта. Сетевые ошибки
// приходят без кода и считаются недоступностью хранилища.
func classify(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %w", port.ErrStoreNotFound, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %w", port.ErrStoreUnauthorized, err)
	default:
		return fmt.Errorf("%w: %w", port.ErrStoreUnreachable, err)
	}
}

// Проверка реализации интерфейса
var _ port.ObjectStore = (*Client)(nil)
