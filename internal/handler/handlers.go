package handlers

import (
	"github.com/go-playground/validator/v10"

	"blogcms/internal/config"
	"blogcms/internal/repository"
	"blogcms/internal/service"
)

type Handlers struct {
	Repo     *repository.Repository
	Auth     service.AuthService
	Cfg      *config.Config
	Validate *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		Repo:     repo,
		Auth:     services.Auth,
		Cfg:      cfg,
		Validate: validator.New(),
	}
}
