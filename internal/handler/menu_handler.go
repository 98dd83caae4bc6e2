package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blogcms/internal/models"
	"blogcms/internal/repository"
)

type MenuItemRequest struct {
	Title    string  `json:"title" validate:"required,min=1,max=100"`
	URL      string  `json:"url" validate:"required"`
	Order    int     `json:"order"`
	ParentID *string `json:"parent"`
}

type ReorderRequest struct {
	Items []repository.ReorderItem `json:"items" validate:"required,min=1,dive"`
}

func (h *Handlers) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Название и URL пункта меню обязательны", http.StatusBadRequest)
		return
	}

	item := &models.MenuItem{
		Title:    req.Title,
		URL:      req.URL,
		Order:    req.Order,
		ParentID: req.ParentID,
	}

	if err := h.Repo.Menu.Create(r.Context(), item); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Создан пункт меню: %s", item.Title)
	WriteSuccess(w, item, http.StatusCreated)
}

func (h *Handlers) GetMenuItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.Menu.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, items, http.StatusOK)
}

// GetMenuStructure отдает меню деревом: корневые пункты с вложенными детьми
func (h *Handlers) GetMenuStructure(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.Menu.GetAll(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, repository.BuildMenuTree(items), http.StatusOK)
}

func (h *Handlers) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Repo.Menu.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, item, http.StatusOK)
}

func (h *Handlers) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Название и URL пункта меню обязательны", http.StatusBadRequest)
		return
	}

	item := &models.MenuItem{
		ItemID:   mux.Vars(r)["id"],
		Title:    req.Title,
		URL:      req.URL,
		Order:    req.Order,
		ParentID: req.ParentID,
	}

	if err := h.Repo.Menu.Update(r.Context(), item); err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, item, http.StatusOK)
}

func (h *Handlers) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]
	if err := h.Repo.Menu.Delete(r.Context(), itemID); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Удален пункт меню: %s", itemID)
	WriteSuccess(w, map[string]string{"message": "Пункт меню успешно удален"}, http.StatusOK)
}

// ReorderMenu меняет порядок пунктов одной транзакцией: либо применяются
// все позиции, либо ни одной
func (h *Handlers) ReorderMenu(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Список пунктов для сортировки обязателен", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Menu.Reorder(r.Context(), req.Items); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Изменен порядок меню: %d пунктов", len(req.Items))
	WriteSuccess(w, map[string]string{"message": "Порядок меню обновлен"}, http.StatusOK)
}
