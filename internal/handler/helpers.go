package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"blogcms/internal/middleware"
)

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// uploadedPath - путь картинки из мидлвары загрузки; fallback позволяет
// передать готовый путь строкой в обычном JSON-запросе
func uploadedPath(r *http.Request, fallback string) *string {
	if path, ok := middleware.UploadPath(r.Context()); ok {
		return &path
	}
	if fallback != "" {
		return &fallback
	}
	return nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// formList разбирает список идентификаторов из multipart-формы: поле может
// повторяться или содержать значения через запятую. Отсутствие поля дает nil
// (связи не трогаем), пустое значение - пустой список (связи очищаем).
func formList(r *http.Request, field string) []string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func formBool(value string) bool {
	b, _ := strconv.ParseBool(value)
	return b
}

// userID достает идентификатор, положенный Auth-мидлварой; на маршрутах
// без нее вернет пустую строку
func userID(r *http.Request) string {
	id, _ := middleware.UserID(r.Context())
	return id
}
