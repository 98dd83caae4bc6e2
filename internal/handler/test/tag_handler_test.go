package test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogcms/internal/models"
	"blogcms/internal/repository"
)

func TestCreateTag(t *testing.T) {
	t.Run("Slug генерируется из названия", func(t *testing.T) {
		env := newTestEnv()

		env.tags.On("Create", mock.Anything, mock.MatchedBy(func(tag *models.Tag) bool {
			return tag.Name == "Базы данных" && tag.Slug == "bazy-dannykh"
		})).Return(nil)

		rr := httptest.NewRecorder()
		env.handler.CreateTag(rr, postJSON("/api/tags", map[string]string{"name": "Базы данных"}))

		assert.Equal(t, http.StatusCreated, rr.Code)
		env.tags.AssertExpectations(t)
	})

	t.Run("Дубликат дает 400", func(t *testing.T) {
		env := newTestEnv()

		env.tags.On("Create", mock.Anything, mock.Anything).
			Return(repository.ErrDuplicate)

		rr := httptest.NewRecorder()
		env.handler.CreateTag(rr, postJSON("/api/tags", map[string]string{"name": "Golang"}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetPopularTags(t *testing.T) {
	t.Run("Лимит по умолчанию", func(t *testing.T) {
		env := newTestEnv()

		env.tags.On("Popular", mock.Anything, 10).
			Return([]models.TagCount{{TagID: "tag-1", Name: "Golang", Slug: "golang", Count: 5}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/tags/popular", nil)
		rr := httptest.NewRecorder()
		env.handler.GetPopularTags(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"count":5`)
	})

	t.Run("Отрицательный лимит отклоняется", func(t *testing.T) {
		env := newTestEnv()

		req := httptest.NewRequest(http.MethodGet, "/api/tags/popular?limit=-1", nil)
		rr := httptest.NewRecorder()
		env.handler.GetPopularTags(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		env.tags.AssertNotCalled(t, "Popular")
	})
}

func TestDeleteTag_NotFound(t *testing.T) {
	env := newTestEnv()

	env.tags.On("DeleteBySlug", mock.Anything, "missing").
		Return(repository.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/tags/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"slug": "missing"})

	rr := httptest.NewRecorder()
	env.handler.DeleteTag(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
