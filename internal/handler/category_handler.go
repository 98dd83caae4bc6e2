package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blogcms/internal/models"
	"blogcms/internal/service"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

func decodeCategoryRequest(r *http.Request) (*CategoryRequest, error) {
	var req CategoryRequest
	if isMultipart(r) {
		req.Name = r.FormValue("name")
		req.Slug = r.FormValue("slug")
		req.Description = r.FormValue("description")
		return &req, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCategoryRequest(r)
	if err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Название категории обязательно", http.StatusBadRequest)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = service.Slugify(req.Name)
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: optString(req.Description),
		Thumbnail:   uploadedPath(r, req.Thumbnail),
	}

	if err := h.Repo.Category.Create(r.Context(), category); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Создана категория: %s", category.Slug)
	WriteSuccess(w, category, http.StatusCreated)
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Repo.Category.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, categories, http.StatusOK)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.Repo.Category.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, category, http.StatusOK)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCategoryRequest(r)
	if err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Название категории обязательно", http.StatusBadRequest)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = service.Slugify(req.Name)
	}

	category := &models.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: optString(req.Description),
		Thumbnail:   uploadedPath(r, req.Thumbnail),
	}

	if err := h.Repo.Category.UpdateBySlug(r.Context(), mux.Vars(r)["slug"], category); err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, category, http.StatusOK)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if err := h.Repo.Category.DeleteBySlug(r.Context(), slug); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Удалена категория: %s", slug)
	WriteSuccess(w, map[string]string{"message": "Категория успешно удалена"}, http.StatusOK)
}
