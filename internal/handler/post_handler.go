package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blogcms/internal/models"
	"blogcms/internal/service"
)

type PostRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Content     string   `json:"content" validate:"required"`
	Excerpt     string   `json:"excerpt"`
	Slug        string   `json:"slug"`
	Thumbnail   string   `json:"thumbnail"`
	IsPublished bool     `json:"isPublished"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
}

func decodePostRequest(r *http.Request) (*PostRequest, error) {
	var req PostRequest
	if isMultipart(r) {
		req.Title = r.FormValue("title")
		req.Content = r.FormValue("content")
		req.Excerpt = r.FormValue("excerpt")
		req.Slug = r.FormValue("slug")
		req.IsPublished = formBool(r.FormValue("isPublished"))
		req.Categories = formList(r, "categories")
		req.Tags = formList(r, "tags")
		return &req, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	req, err := decodePostRequest(r)
	if err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Заголовок и содержимое обязательны", http.StatusBadRequest)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = service.Slugify(req.Title)
	}

	post := &models.Post{
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		Excerpt:     optString(req.Excerpt),
		Thumbnail:   uploadedPath(r, req.Thumbnail),
		IsPublished: req.IsPublished,
		AuthorID:    userID(r),
	}

	if err := h.Repo.Post.Create(r.Context(), post, req.Categories, req.Tags); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Создан пост: %s (%s)", post.Title, post.Slug)
	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.Post.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Repo.Post.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	req, err := decodePostRequest(r)
	if err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Заголовок и содержимое обязательны", http.StatusBadRequest)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = service.Slugify(req.Title)
	}

	post := &models.Post{
		PostID:      mux.Vars(r)["id"],
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		Excerpt:     optString(req.Excerpt),
		Thumbnail:   uploadedPath(r, req.Thumbnail),
		IsPublished: req.IsPublished,
	}

	if err := h.Repo.Post.UpdateOwned(r.Context(), post, userID(r), req.Categories, req.Tags); err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	if err := h.Repo.Post.DeleteOwned(r.Context(), postID, userID(r)); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Удален пост: %s", postID)
	WriteSuccess(w, map[string]string{"message": "Пост успешно удален"}, http.StatusOK)
}

func (h *Handlers) TogglePublishPost(w http.ResponseWriter, r *http.Request) {
	published, err := h.Repo.Post.TogglePublishOwned(r.Context(), mux.Vars(r)["id"], userID(r))
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, map[string]bool{"isPublished": published}, http.StatusOK)
}

func (h *Handlers) SearchPosts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		WriteError(w, "Параметр query обязателен", http.StatusBadRequest)
		return
	}

	posts, err := h.Repo.Post.Search(r.Context(), query)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPostsByCategory(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.Post.GetByCategorySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}

func (h *Handlers) GetPostsByTag(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.Post.GetByTagSlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, posts, http.StatusOK)
}
