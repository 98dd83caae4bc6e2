package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blogcms/cmd/app"
	"blogcms/internal/config"
	handlers "blogcms/internal/handler"
	"blogcms/internal/middleware"
)

// размеры, под которые перекодируются загружаемые картинки
const (
	postThumbWidth      = 1200
	postThumbHeight     = 630
	categoryThumbWidth  = 600
	categoryThumbHeight = 400
	bannerImageWidth    = 1200
	bannerImageHeight   = 400
	avatarSize          = 256
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		logrus.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	auth := middleware.AuthMiddleware(services.Auth)
	admin := middleware.AdminOnlyMiddleware(repo.User)

	postImage := middleware.ProcessImage(services.Upload, cfg.Upload.MaxSize, "thumbnail", postThumbWidth, postThumbHeight)
	pageImage := middleware.ProcessImage(services.Upload, cfg.Upload.MaxSize, "thumbnail", postThumbWidth, postThumbHeight)
	categoryImage := middleware.ProcessImage(services.Upload, cfg.Upload.MaxSize, "thumbnail", categoryThumbWidth, categoryThumbHeight)
	bannerImage := middleware.ProcessImage(services.Upload, cfg.Upload.MaxSize, "image", bannerImageWidth, bannerImageHeight)
	avatarImage := middleware.ProcessImage(services.Upload, cfg.Upload.MaxSize, "avatar", avatarSize, avatarSize)

	// protected требует токен; adminOnly - токен плюс роль admin из БД.
	// Мидлвары применяются справа налево: auth всегда снаружи
	protected := func(h http.HandlerFunc, mws ...middleware.Middleware) http.Handler {
		return middleware.Chain(h, append(mws, auth)...)
	}
	adminOnly := func(h http.HandlerFunc, mws ...middleware.Middleware) http.Handler {
		return middleware.Chain(h, append(mws, admin, auth)...)
	}

	r := mux.NewRouter()

	// setting up routes
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.HealthCheck(); err != nil {
			handlers.WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
			return
		}
		handlers.WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
	}).Methods(http.MethodGet)

	if cfg.Upload.Backend == "disk" {
		r.PathPrefix(cfg.Upload.PublicBase + "/").Handler(
			http.StripPrefix(cfg.Upload.PublicBase+"/", http.FileServer(http.Dir(cfg.Upload.Dir))))
	}

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)

	api.Handle("/users/profile", protected(handler.GetProfile)).Methods(http.MethodGet)
	api.Handle("/users/profile", protected(handler.UpdateProfile, avatarImage)).Methods(http.MethodPut)
	api.Handle("/users/profile", protected(handler.DeleteProfile)).Methods(http.MethodDelete)
	api.Handle("/users/change-password", protected(handler.ChangePassword)).Methods(http.MethodPut)
	api.Handle("/users", adminOnly(handler.GetUsers)).Methods(http.MethodGet)
	api.Handle("/users/{id}/role", adminOnly(handler.UpdateUserRole)).Methods(http.MethodPatch)

	// фиксированные пути регистрируются раньше шаблонных
	api.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/search", handler.SearchPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/category/{slug}", handler.GetPostsByCategory).Methods(http.MethodGet)
	api.HandleFunc("/posts/tag/{slug}", handler.GetPostsByTag).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	api.Handle("/posts", protected(handler.CreatePost, postImage)).Methods(http.MethodPost)
	api.Handle("/posts/{id}", protected(handler.UpdatePost, postImage)).Methods(http.MethodPut)
	api.Handle("/posts/{id}", protected(handler.DeletePost)).Methods(http.MethodDelete)
	api.Handle("/posts/{id}/toggle-publish", protected(handler.TogglePublishPost)).Methods(http.MethodPatch)

	api.HandleFunc("/comments", handler.GetComments).Methods(http.MethodGet)
	api.HandleFunc("/comments/{id}", handler.GetComment).Methods(http.MethodGet)
	api.Handle("/comments", protected(handler.CreateComment)).Methods(http.MethodPost)
	api.Handle("/comments/{id}", protected(handler.UpdateComment)).Methods(http.MethodPut)
	api.Handle("/comments/{id}", protected(handler.DeleteComment)).Methods(http.MethodDelete)
	api.Handle("/comments/{id}/approve", adminOnly(handler.ApproveComment)).Methods(http.MethodPatch)

	api.HandleFunc("/pages", handler.GetPages).Methods(http.MethodGet)
	api.HandleFunc("/pages/search", handler.SearchPages).Methods(http.MethodGet)
	api.HandleFunc("/pages/{id}", handler.GetPage).Methods(http.MethodGet)
	api.Handle("/pages", adminOnly(handler.CreatePage, pageImage)).Methods(http.MethodPost)
	api.Handle("/pages/{id}", adminOnly(handler.UpdatePage, pageImage)).Methods(http.MethodPut)
	api.Handle("/pages/{id}", adminOnly(handler.DeletePage)).Methods(http.MethodDelete)
	api.Handle("/pages/{id}/toggle-publish", adminOnly(handler.TogglePublishPage)).Methods(http.MethodPatch)

	api.HandleFunc("/categories", handler.GetCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{slug}", handler.GetCategory).Methods(http.MethodGet)
	api.Handle("/categories", adminOnly(handler.CreateCategory, categoryImage)).Methods(http.MethodPost)
	api.Handle("/categories/{slug}", adminOnly(handler.UpdateCategory, categoryImage)).Methods(http.MethodPut)
	api.Handle("/categories/{slug}", adminOnly(handler.DeleteCategory)).Methods(http.MethodDelete)

	api.HandleFunc("/tags", handler.GetTags).Methods(http.MethodGet)
	api.HandleFunc("/tags/search", handler.SearchTags).Methods(http.MethodGet)
	api.HandleFunc("/tags/popular", handler.GetPopularTags).Methods(http.MethodGet)
	api.HandleFunc("/tags/{slug}/posts", handler.GetPostsByTag).Methods(http.MethodGet)
	api.HandleFunc("/tags/{slug}", handler.GetTag).Methods(http.MethodGet)
	api.Handle("/tags", adminOnly(handler.CreateTag)).Methods(http.MethodPost)
	api.Handle("/tags/{slug}", adminOnly(handler.UpdateTag)).Methods(http.MethodPut)
	api.Handle("/tags/{slug}", adminOnly(handler.DeleteTag)).Methods(http.MethodDelete)

	api.HandleFunc("/menus", handler.GetMenuItems).Methods(http.MethodGet)
	api.HandleFunc("/menus/structure", handler.GetMenuStructure).Methods(http.MethodGet)
	api.HandleFunc("/menus/{id}", handler.GetMenuItem).Methods(http.MethodGet)
	api.Handle("/menus", adminOnly(handler.CreateMenuItem)).Methods(http.MethodPost)
	api.Handle("/menus/reorder", adminOnly(handler.ReorderMenu)).Methods(http.MethodPost)
	api.Handle("/menus/{id}", adminOnly(handler.UpdateMenuItem)).Methods(http.MethodPut)
	api.Handle("/menus/{id}", adminOnly(handler.DeleteMenuItem)).Methods(http.MethodDelete)

	api.HandleFunc("/banners", handler.GetBanners).Methods(http.MethodGet)
	api.HandleFunc("/banners/{id}", handler.GetBanner).Methods(http.MethodGet)
	api.Handle("/banners", adminOnly(handler.CreateBanner, bannerImage)).Methods(http.MethodPost)
	api.Handle("/banners/{id}", adminOnly(handler.UpdateBanner, bannerImage)).Methods(http.MethodPut)
	api.Handle("/banners/{id}", adminOnly(handler.DeleteBanner)).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		r,
		middleware.RateLimitMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logrus.Infof("Сервер запущен на %s", addr)
	logrus.Infof("База данных: %s", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		logrus.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
