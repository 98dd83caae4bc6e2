package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	handlers "blogcms/internal/handler"
	"blogcms/internal/models"
	"blogcms/internal/repository"
)

func postJSON(path string, body interface{}) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	t.Run("Успешная регистрация", func(t *testing.T) {
		env := newTestEnv()

		env.auth.On("Register", mock.Anything, "petya", "petya@example.com", "password123").
			Return(&models.User{UserID: "user-1", Username: "petya", Email: "petya@example.com", Role: models.RoleUser}, nil)

		rr := httptest.NewRecorder()
		env.handler.Register(rr, postJSON("/api/auth/register", map[string]string{
			"username": "petya",
			"email":    "petya@example.com",
			"password": "password123",
		}))

		assert.Equal(t, http.StatusCreated, rr.Code)
		env.auth.AssertExpectations(t)
	})

	t.Run("Короткий пароль отклоняется до сервиса", func(t *testing.T) {
		env := newTestEnv()

		rr := httptest.NewRecorder()
		env.handler.Register(rr, postJSON("/api/auth/register", map[string]string{
			"username": "petya",
			"email":    "petya@example.com",
			"password": "123",
		}))

		assertJSONError(t, rr, http.StatusBadRequest, "Неверные данные регистрации")
		env.auth.AssertNotCalled(t, "Register")
	})

	t.Run("Занятый email дает 400", func(t *testing.T) {
		env := newTestEnv()

		env.auth.On("Register", mock.Anything, "petya", "petya@example.com", "password123").
			Return(nil, repository.ErrDuplicate)

		rr := httptest.NewRecorder()
		env.handler.Register(rr, postJSON("/api/auth/register", map[string]string{
			"username": "petya",
			"email":    "petya@example.com",
			"password": "password123",
		}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Успешный вход возвращает токен", func(t *testing.T) {
		env := newTestEnv()

		env.auth.On("Login", mock.Anything, "petya@example.com", "password123").
			Return(&models.User{UserID: "user-1", Username: "petya", Role: models.RoleUser}, "jwt-token", nil)

		rr := httptest.NewRecorder()
		env.handler.Login(rr, postJSON("/api/auth/login", map[string]string{
			"email":    "petya@example.com",
			"password": "password123",
		}))

		require.Equal(t, http.StatusOK, rr.Code)

		var response handlers.LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "jwt-token", response.Token)
		assert.Equal(t, "user-1", response.UserID)
	})

	t.Run("Неверный пароль и неизвестный email дают одинаковый 401", func(t *testing.T) {
		env := newTestEnv()

		env.auth.On("Login", mock.Anything, "petya@example.com", "wrongpassword").
			Return(nil, "", repository.ErrInvalidCredentials)
		env.auth.On("Login", mock.Anything, "nobody@example.com", "password123").
			Return(nil, "", repository.ErrInvalidCredentials)

		wrongPassword := httptest.NewRecorder()
		env.handler.Login(wrongPassword, postJSON("/api/auth/login", map[string]string{
			"email":    "petya@example.com",
			"password": "wrongpassword",
		}))

		unknownEmail := httptest.NewRecorder()
		env.handler.Login(unknownEmail, postJSON("/api/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "password123",
		}))

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		// тела ответов неотличимы: по ним нельзя понять, существует ли email
		assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("Неверный текущий пароль дает 400", func(t *testing.T) {
		env := newTestEnv()

		env.auth.On("ChangePassword", mock.Anything, "user-1", "wrongpassword", "newpassword").
			Return(repository.ErrInvalidCredentials)

		req := postJSON("/api/users/change-password", map[string]string{
			"currentPassword": "wrongpassword",
			"newPassword":     "newpassword",
		})
		req = req.WithContext(withUserID(req.Context(), "user-1"))

		rr := httptest.NewRecorder()
		env.handler.ChangePassword(rr, req)

		assertJSONError(t, rr, http.StatusBadRequest, "Текущий пароль неверен")
	})

	t.Run("Успешная смена пароля", func(t *testing.T) {
		env := newTestEnv()

		env.auth.On("ChangePassword", mock.Anything, "user-1", "password123", "newpassword").
			Return(nil)

		req := postJSON("/api/users/change-password", map[string]string{
			"currentPassword": "password123",
			"newPassword":     "newpassword",
		})
		req = req.WithContext(withUserID(req.Context(), "user-1"))

		rr := httptest.NewRecorder()
		env.handler.ChangePassword(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
