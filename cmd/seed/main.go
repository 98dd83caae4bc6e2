package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"blogcms/internal/config"
	"blogcms/internal/database"
	"blogcms/internal/models"
	"blogcms/internal/repository"
)

// Наполняет БД стартовыми данными: администратор, базовые категории,
// теги и пара демонстрационных постов. Старые данные стираются
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.LoadConfig()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logrus.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer db.CloseDB()

	repo := repository.NewRepository(db.DB)
	ctx := context.Background()

	wipe := []string{"post_categories", "post_tags", "comments", "posts", "pages", "tags", "categories", "menu_items", "banners", "users"}
	for _, table := range wipe {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			logrus.Fatalf("Не удалось очистить таблицу %s: %v", table, err)
		}
	}
	logrus.Info("Старые данные удалены")

	admin := &models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Role:     models.RoleAdmin,
	}
	if err := repo.User.CreateUser(ctx, admin, "adminpassword"); err != nil {
		logrus.Fatalf("Не удалось создать администратора: %v", err)
	}
	logrus.Infof("Создан администратор: %s", admin.Email)

	categories := []*models.Category{
		{Name: "Technology", Slug: "technology"},
		{Name: "Travel", Slug: "travel"},
		{Name: "Food", Slug: "food"},
	}
	for _, c := range categories {
		if err := repo.Category.Create(ctx, c); err != nil {
			logrus.Fatalf("Не удалось создать категорию %s: %v", c.Name, err)
		}
	}
	logrus.Infof("Создано категорий: %d", len(categories))

	tags := []*models.Tag{
		{Name: "JavaScript", Slug: "javascript"},
		{Name: "NodeJS", Slug: "nodejs"},
		{Name: "MongoDB", Slug: "mongodb"},
	}
	for _, t := range tags {
		if err := repo.Tag.Create(ctx, t); err != nil {
			logrus.Fatalf("Не удалось создать тег %s: %v", t.Name, err)
		}
	}
	logrus.Infof("Создано тегов: %d", len(tags))

	excerpt1 := "Короткое знакомство с платформой."
	excerpt2 := "Черновик, который еще не опубликован."
	posts := []struct {
		post       *models.Post
		categories []string
		tags       []string
	}{
		{
			post: &models.Post{
				Title:       "Первый пост",
				Slug:        "pervyj-post",
				Content:     "Добро пожаловать! Это первый опубликованный пост блога.",
				Excerpt:     &excerpt1,
				IsPublished: true,
				AuthorID:    admin.UserID,
			},
			categories: []string{categories[0].CategoryID},
			tags:       []string{tags[0].TagID, tags[1].TagID},
		},
		{
			post: &models.Post{
				Title:       "Черновик поста",
				Slug:        "chernovik-posta",
				Content:     "Этот пост пока скрыт от читателей.",
				Excerpt:     &excerpt2,
				IsPublished: false,
				AuthorID:    admin.UserID,
			},
			categories: []string{categories[1].CategoryID},
			tags:       []string{tags[2].TagID},
		},
	}
	for _, p := range posts {
		if err := repo.Post.Create(ctx, p.post, p.categories, p.tags); err != nil {
			logrus.Fatalf("Не удалось создать пост %s: %v", p.post.Title, err)
		}
	}
	logrus.Infof("Создано постов: %d", len(posts))

	menu := []*models.MenuItem{
		{Title: "Главная", URL: "/", Order: 0},
		{Title: "Блог", URL: "/posts", Order: 1},
		{Title: "О нас", URL: "/pages/about", Order: 2},
	}
	for _, item := range menu {
		if err := repo.Menu.Create(ctx, item); err != nil {
			logrus.Fatalf("Не удалось создать пункт меню %s: %v", item.Title, err)
		}
	}
	logrus.Infof("Создано пунктов меню: %d", len(menu))

	logrus.Info("База данных успешно наполнена")
}
