package test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"blogcms/internal/config"
	handlers "blogcms/internal/handler"
	"blogcms/internal/middleware"
	"blogcms/internal/repository"
)

type testEnv struct {
	handler  *handlers.Handlers
	auth     *MockAuthService
	users    *MockUserRepository
	posts    *MockPostRepository
	tags     *MockTagRepository
	comments *MockCommentRepository
	menu     *MockMenuRepository
}

func newTestEnv() *testEnv {
	env := &testEnv{
		auth:     new(MockAuthService),
		users:    new(MockUserRepository),
		posts:    new(MockPostRepository),
		tags:     new(MockTagRepository),
		comments: new(MockCommentRepository),
		menu:     new(MockMenuRepository),
	}

	repo := &repository.Repository{
		User:    env.users,
		Post:    env.posts,
		Tag:     env.tags,
		Comment: env.comments,
		Menu:    env.menu,
	}

	env.handler = &handlers.Handlers{
		Repo:     repo,
		Auth:     env.auth,
		Cfg:      &config.Config{JWTSecretKey: "test-secret-key", ServerPort: 8080},
		Validate: validator.New(),
	}

	return env
}

// withUserID кладет идентификатор в контекст так же, как Auth-мидлвара
func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, middleware.CtxUserID, userID)
}

func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], expectedError)
}
