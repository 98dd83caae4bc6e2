package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"blogcms/internal/models"
	"blogcms/internal/repository"
	"blogcms/internal/service"
)

type Middleware func(http.Handler) http.Handler

type ContextKey string

const (
	CtxUserID     ContextKey = "userID"
	CtxUploadPath ContextKey = "uploadPath"
)

// UserID - идентификатор пользователя, положенный Auth-мидлварой
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(CtxUserID).(string)
	return userID, ok
}

// UploadPath - публичный путь картинки, положенный Upload-мидлварой
func UploadPath(ctx context.Context) (string, bool) {
	path, ok := ctx.Value(CtxUploadPath).(string)
	return path, ok
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// AuthMiddleware проверяет JWT и кладет userId в контекст. Отсутствующий,
// искаженный и просроченный токены неразличимы для клиента: всегда 401
// с одним и тем же телом
func AuthMiddleware(auth service.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, "Требуется авторизация", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, "Требуется авторизация", http.StatusUnauthorized)
				return
			}

			userID, err := auth.ParseUserID(parts[1])
			if err != nil {
				writeError(w, "Требуется авторизация", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnlyMiddleware перечитывает пользователя из БД на каждом запросе:
// смена роли действует немедленно, кеша нет намеренно
func AdminOnlyMiddleware(userRepo repository.UserRepository) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserID(r.Context())
			if !ok {
				writeError(w, "Требуется авторизация", http.StatusUnauthorized)
				return
			}

			user, err := userRepo.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					writeError(w, "Доступ запрещен. Требуется роль администратора", http.StatusForbidden)
					return
				}
				logrus.Errorf("ошибка при проверке роли: %v", err)
				writeError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
				return
			}

			if user.Role != models.RoleAdmin {
				writeError(w, "Доступ запрещен. Требуется роль администратора", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
			"ip":       clientIP(r),
		}).Info("request")
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
