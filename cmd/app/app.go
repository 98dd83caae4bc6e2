package app

import (
	"github.com/sirupsen/logrus"

	"blogcms/internal/config"
	"blogcms/internal/database"
	"blogcms/internal/repository"
	"blogcms/internal/service"
	"blogcms/internal/storage"
)

// App собирает зависимости приложения: БД, файловое хранилище,
// репозитории и сервисы
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logrus.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.Fatalf("Не удалось инициализировать хранилище файлов: %v", err)
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, store)

	return db, repo, services
}
