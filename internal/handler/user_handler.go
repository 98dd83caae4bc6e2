package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.Repo.User.GetUserByID(r.Context(), userID(r))
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if isMultipart(r) {
		req.Username = r.FormValue("username")
		req.Email = r.FormValue("email")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные профиля", http.StatusBadRequest)
		return
	}

	user, err := h.Repo.User.UpdateProfile(r.Context(), userID(r),
		optString(req.Username), optString(req.Email), uploadedPath(r, ""))
	if err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Обновлен профиль пользователя: %s", user.Email)
	WriteSuccess(w, user, http.StatusOK)
}

func (h *Handlers) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.User.DeleteUser(r.Context(), userID(r)); err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Аккаунт успешно удален"}, http.StatusOK)
}

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.User.GetUsers(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, users, http.StatusOK)
}

func (h *Handlers) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Роль должна быть user или admin", http.StatusBadRequest)
		return
	}

	user, err := h.Repo.User.UpdateRole(r.Context(), mux.Vars(r)["id"], req.Role)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Изменена роль пользователя %s: %s", user.Email, user.Role)
	WriteSuccess(w, user, http.StatusOK)
}
