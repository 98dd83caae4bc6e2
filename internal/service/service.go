package service

import (
	"blogcms/internal/config"
	"blogcms/internal/imaging"
	"blogcms/internal/repository"
	"blogcms/internal/storage"
)

type Service struct {
	Auth   AuthService
	Upload UploadService
}

func NewService(repo *repository.Repository, cfg *config.Config, store storage.Storage) *Service {
	return &Service{
		Auth:   NewAuthService(repo.User, cfg),
		Upload: NewUploadService(imaging.NewProcessor(), store),
	}
}
