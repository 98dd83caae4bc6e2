package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blogcms/internal/models"
)

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
	PostID  string `json:"postId" validate:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Текст комментария и postId обязательны", http.StatusBadRequest)
		return
	}

	// сначала убеждаемся, что пост существует
	if _, err := h.Repo.Post.GetByID(r.Context(), req.PostID); err != nil {
		writeRepoError(w, err)
		return
	}

	comment := &models.Comment{
		Content:  req.Content,
		PostID:   req.PostID,
		AuthorID: userID(r),
	}

	if err := h.Repo.Comment.Create(r.Context(), comment); err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Добавлен комментарий к посту %s", req.PostID)
	WriteSuccess(w, comment, http.StatusCreated)
}

// GetComments отдает комментарии: все или одного поста через ?postId=
func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.Repo.Comment.GetAll(r.Context(), r.URL.Query().Get("postId"))
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, comments, http.StatusOK)
}

func (h *Handlers) GetComment(w http.ResponseWriter, r *http.Request) {
	comment, err := h.Repo.Comment.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Текст комментария обязателен", http.StatusBadRequest)
		return
	}

	comment, err := h.Repo.Comment.UpdateOwned(r.Context(), mux.Vars(r)["id"], userID(r), req.Content)
	if err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := mux.Vars(r)["id"]
	if err := h.Repo.Comment.DeleteOwned(r.Context(), commentID, userID(r)); err != nil {
		writeRepoError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"message": "Комментарий успешно удален"}, http.StatusOK)
}

func (h *Handlers) ApproveComment(w http.ResponseWriter, r *http.Request) {
	comment, err := h.Repo.Comment.Approve(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeRepoError(w, err)
		return
	}

	logrus.Infof("Одобрен комментарий: %s", comment.CommentID)
	WriteSuccess(w, comment, http.StatusOK)
}
