package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"blogcms/internal/imaging"
	"blogcms/internal/storage"
)

type UploadService interface {
	ProcessImage(ctx context.Context, data []byte, width, height int) (string, error)
}

type uploadService struct {
	processor *imaging.Processor
	store     storage.Storage
}

func NewUploadService(processor *imaging.Processor, store storage.Storage) UploadService {
	return &uploadService{
		processor: processor,
		store:     store,
	}
}

// ProcessImage перекодирует буфер в JPEG точного размера и сохраняет его
// под устойчивым к коллизиям именем. Публичный путь возвращается только
// после успешной записи: неудачная загрузка не оставляет ссылок на
// полузаписанный файл
func (s *uploadService) ProcessImage(ctx context.Context, data []byte, width, height int) (string, error) {
	encoded, err := s.processor.Transcode(data, width, height)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d-%s.jpg", time.Now().UnixMilli(), xid.New().String())

	publicPath, err := s.store.Save(ctx, filename, encoded, "image/jpeg")
	if err != nil {
		return "", err
	}

	return publicPath, nil
}
