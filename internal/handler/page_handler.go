package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blogcms/internal/models"
	"blogcms/internal/service"
)

type PageRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Content     string `json:"content" validate:"required"`
	Slug        string `json:"slug"`
	Thumbnail   string `json:"thumbnail"`
	IsPublished bool   `json:"isPublished"`
}

func decodePageRequest(r *http.Request) (*PageRequest, error) {
	var req PageRequest
	if isMultipart(r) {
		req.Title = r.FormValue("title")
		req.Content = r.FormValue("content")
		req.Slug = r.FormValue("slug")
		req.IsPublished = formBool(r.FormValue("isPublished"))
		return &req, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *Handlers) CreatePage(w http.ResponseWriter, r *http.Request) {
	req, err := decodePageRequest(r)
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

	page := &models.Page{
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		Thumbnail:   uploadedPath(r, req.Thumbnail),
		IsPublished: req.IsPublished,
	}

	if err := h.Repo.Page.Create(r.Context(), page); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Создана страница: %s (%s)", page.Title, page.Slug)
	WriteSuccess(w, page, http.StatusCreated)
}

func (h *Handlers) GetPages(w http.ResponseWriter, r *http.Request) {
	var isPublished *bool
	if raw := r.URL.Query().Get("published"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			WriteError(w, "Параметр published должен быть true или false", http.StatusBadRequest)
			return
		}
		isPublished = &b
	}

	pages, err := h.Repo.Page.GetAll(r.Context(), isPublished)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, pages, http.StatusOK)
}

func (h *Handlers) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.Repo.Page.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, page, http.StatusOK)
}

func (h *Handlers) UpdatePage(w http.ResponseWriter, r *http.Request) {
	req, err := decodePageRequest(r)
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

	page := &models.Page{
		PageID:      mux.Vars(r)["id"],
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		Thumbnail:   uploadedPath(r, req.Thumbnail),
		IsPublished: req.IsPublished,
	}

	if err := h.Repo.Page.Update(r.Context(), page); err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, page, http.StatusOK)
}

func (h *Handlers) DeletePage(w http.ResponseWriter, r *http.Request) {
	pageID := mux.Vars(r)["id"]
	if err := h.Repo.Page.Delete(r.Context(), pageID); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Удалена страница: %s", pageID)
	WriteSuccess(w, map[string]string{"message": "Страница успешно удалена"}, http.StatusOK)
}

func (h *Handlers) TogglePublishPage(w http.ResponseWriter, r *http.Request) {
	published, err := h.Repo.Page.TogglePublish(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, map[string]bool{"isPublished": published}, http.StatusOK)
}

func (h *Handlers) SearchPages(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		WriteError(w, "Параметр query обязателен", http.StatusBadRequest)
		return
	}

	pages, err := h.Repo.Page.Search(r.Context(), query)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, pages, http.StatusOK)
}
