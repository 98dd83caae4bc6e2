package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"blogcms/internal/config"
)

// Storage - место назначения обработанных загрузок. Save возвращает
// публичный путь, который кладется в тело сущности
type Storage interface {
	Save(ctx context.Context, filename string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
}

func NewStorage(cfg *config.Config) (Storage, error) {
	switch cfg.Upload.Backend {
	case "minio":
		return NewMinIOStorage(cfg)
	case "disk", "":
		return NewDiskStorage(cfg), nil
	default:
		return nil, fmt.Errorf("неизвестный storage backend: %s", cfg.Upload.Backend)
	}
}

type DiskStorage struct {
	dir        string
	publicBase string
}

func NewDiskStorage(cfg *config.Config) *DiskStorage {
	return &DiskStorage{
		dir:        cfg.Upload.Dir,
		publicBase: cfg.Upload.PublicBase,
	}
}

func (s *DiskStorage) Save(_ context.Context, filename string, data []byte, _ string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("ошибка при создании каталога загрузок: %w", err)
	}

	filePath := filepath.Join(s.dir, filename)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return "", fmt.Errorf("ошибка при записи файла: %w", err)
	}

	return s.publicBase + "/" + filename, nil
}

func (s *DiskStorage) Delete(_ context.Context, filename string) error {
	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil {
		return fmt.Errorf("ошибка при удалении файла: %w", err)
	}
	return nil
}
