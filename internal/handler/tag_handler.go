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

const defaultPopularTagsLimit = 10

type TagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
	Slug string `json:"slug"`
}

func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Название тега обязательно", http.StatusBadRequest)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = service.Slugify(req.Name)
	}

	tag := &models.Tag{Name: req.Name, Slug: slug}
	if err := h.Repo.Tag.Create(r.Context(), tag); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Создан тег: %s", tag.Slug)
	WriteSuccess(w, tag, http.StatusCreated)
}

func (h *Handlers) GetTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Repo.Tag.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, tags, http.StatusOK)
}

func (h *Handlers) GetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.Repo.Tag.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, tag, http.StatusOK)
}

func (h *Handlers) SearchTags(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		WriteError(w, "Параметр query обязателен", http.StatusBadRequest)
		return
	}

	tags, err := h.Repo.Tag.Search(r.Context(), query)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, tags, http.StatusOK)
}

func (h *Handlers) GetPopularTags(w http.ResponseWriter, r *http.Request) {
	limit := defaultPopularTagsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, "Параметр limit должен быть положительным числом", http.StatusBadRequest)
			return
		}
		limit = n
	}

	tags, err := h.Repo.Tag.Popular(r.Context(), limit)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, tags, http.StatusOK)
}

func (h *Handlers) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Название тега обязательно", http.StatusBadRequest)
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = service.Slugify(req.Name)
	}

	tag := &models.Tag{Name: req.Name, Slug: slug}
	if err := h.Repo.Tag.UpdateBySlug(r.Context(), mux.Vars(r)["slug"], tag); err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, tag, http.StatusOK)
}

func (h *Handlers) DeleteTag(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if err := h.Repo.Tag.DeleteBySlug(r.Context(), slug); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Удален тег: %s", slug)
	WriteSuccess(w, map[string]string{"message": "Тег успешно удален"}, http.StatusOK)
}
