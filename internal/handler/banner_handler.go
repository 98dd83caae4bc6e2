package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blogcms/internal/models"
)

type BannerRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link"`
	IsActive bool   `json:"isActive"`
}

func decodeBannerRequest(r *http.Request) (*BannerRequest, error) {
	var req BannerRequest
	if isMultipart(r) {
		req.Title = r.FormValue("title")
		req.Link = r.FormValue("link")
		req.IsActive = formBool(r.FormValue("isActive"))
		return &req, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *Handlers) CreateBanner(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBannerRequest(r)
	if err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Название баннера обязательно", http.StatusBadRequest)
		return
	}

	imageURL := uploadedPath(r, req.ImageURL)
	if imageURL == nil {
		WriteError(w, "Изображение баннера обязательно", http.StatusBadRequest)
		return
	}

	banner := &models.Banner{
		Title:    req.Title,
		ImageURL: *imageURL,
		Link:     optString(req.Link),
		IsActive: req.IsActive,
	}

	if err := h.Repo.Banner.Create(r.Context(), banner); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Создан баннер: %s", banner.Title)
	WriteSuccess(w, banner, http.StatusCreated)
}

func (h *Handlers) GetBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.Repo.Banner.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, banners, http.StatusOK)
}

func (h *Handlers) GetBanner(w http.ResponseWriter, r *http.Request) {
	banner, err := h.Repo.Banner.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, banner, http.StatusOK)
}

func (h *Handlers) UpdateBanner(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBannerRequest(r)
	if err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Название баннера обязательно", http.StatusBadRequest)
		return
	}

	banner := &models.Banner{
		BannerID: mux.Vars(r)["id"],
		Title:    req.Title,
		Link:     optString(req.Link),
		IsActive: req.IsActive,
	}
	// пустой image_url репозиторий не затирает, старая картинка остается
	if imageURL := uploadedPath(r, req.ImageURL); imageURL != nil {
		banner.ImageURL = *imageURL
	}

	if err := h.Repo.Banner.Update(r.Context(), banner); err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, banner, http.StatusOK)
}

func (h *Handlers) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	bannerID := mux.Vars(r)["id"]
	if err := h.Repo.Banner.Delete(r.Context(), bannerID); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Удален баннер: %s", bannerID)
	WriteSuccess(w, map[string]string{"message": "Баннер успешно удален"}, http.StatusOK)
}
