package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcms/internal/config"
	"blogcms/internal/models"
	"blogcms/internal/repository"
)

type stubAuth struct {
	userID string
	err    error
}

func (s stubAuth) Register(context.Context, string, string, string) (*models.User, error) {
	return nil, nil
}

func (s stubAuth) Login(context.Context, string, string) (*models.User, string, error) {
	return nil, "", nil
}

func (s stubAuth) ChangePassword(context.Context, string, string, string) error {
	return nil
}

func (s stubAuth) ParseUserID(string) (string, error) {
	return s.userID, s.err
}

type stubUserRepo struct {
	repository.UserRepository

	user *models.User
	err  error
}

func (s stubUserRepo) GetUserByID(context.Context, string) (*models.User, error) {
	return s.user, s.err
}

func okHandler(sawUserID *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sawUserID != nil {
			id, _ := UserID(r.Context())
			*sawUserID = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Валидный токен кладет userId в контекст", func(t *testing.T) {
		var sawUserID string
		handler := AuthMiddleware(stubAuth{userID: "user-1"})(okHandler(&sawUserID))

		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-1", sawUserID)
	})

	t.Run("Все варианты отказа дают одинаковый 401", func(t *testing.T) {
		requests := []func() *http.Request{
			func() *http.Request { // без заголовка
				return httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
			},
			func() *http.Request { // не Bearer
				req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
				req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
				return req
			},
			func() *http.Request { // битый токен
				req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
				req.Header.Set("Authorization", "Bearer garbage")
				return req
			},
		}

		handler := AuthMiddleware(stubAuth{err: errors.New("token is malformed")})(okHandler(nil))

		var bodies []string
		for _, build := range requests {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, build())
			require.Equal(t, http.StatusUnauthorized, rr.Code)
			bodies = append(bodies, rr.Body.String())
		}

		// тело не выдает причину отказа
		assert.Equal(t, bodies[0], bodies[1])
		assert.Equal(t, bodies[1], bodies[2])
	})
}

func TestAdminOnlyMiddleware(t *testing.T) {
	newRequest := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		return req.WithContext(context.WithValue(req.Context(), CtxUserID, "user-1"))
	}

	t.Run("Обычный пользователь получает 403", func(t *testing.T) {
		handler := AdminOnlyMiddleware(stubUserRepo{user: &models.User{Role: models.RoleUser}})(okHandler(nil))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, newRequest())

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Администратор проходит", func(t *testing.T) {
		handler := AdminOnlyMiddleware(stubUserRepo{user: &models.User{Role: models.RoleAdmin}})(okHandler(nil))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, newRequest())

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Удаленный пользователь получает 403", func(t *testing.T) {
		handler := AdminOnlyMiddleware(stubUserRepo{err: repository.ErrNotFound})(okHandler(nil))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, newRequest())

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := &config.Config{RateLimit: config.RateLimit{RPS: 0.001, Burst: 1}}
	handler := RateLimitMiddleware(cfg)(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.RemoteAddr = "203.0.113.7:54321"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// другой IP не задет чужим лимитом
	other := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	other.RemoteAddr = "203.0.113.8:54321"
	third := httptest.NewRecorder()
	handler.ServeHTTP(third, other)
	assert.Equal(t, http.StatusOK, third.Code)
}
