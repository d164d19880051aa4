package port

import (
	"context"
	"errors"
)

// Классы ошибок хранилища объектов. Адаптеры обязаны заворачивать
// свои ошибки в один из этих sentinel-ов.
var (
	ErrStoreNotFound     = errors.New("object store: not found")
	ErrStoreUnauthorized = errors.New("object store: unauthorized")
	ErrStoreUnreachable  = errors.New("object store: unreachable")
)

// ObjectStore — плоское хранилище блобов для обмена фотографиями.
// Ключи — строки; "каталоги" существуют только как префиксы.
type ObjectStore interface {
	// Upload кладёт локальный файл под указанным ключом.
	Upload(ctx context.Context, key, localPath string) error

	// Download забирает объект по ключу в локальный файл.
	Download(ctx context.Context, key, localPath string) error
}
