package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"blogcms/internal/service"
)

// ProcessImage - мидлвара загрузки: если в multipart-форме есть файл в поле
// field, он перекодируется под width x height и сохраняется, а публичный
// путь кладется в контекст. Запрос без файла проходит дальше без изменений.
// Ошибка обработки валит весь запрос: обработчик не увидит битую картинку
func ProcessImage(upload service.UploadService, maxSize int64, field string, width, height int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
				next.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			if err := r.ParseMultipartForm(maxSize); err != nil {
				writeError(w, "Не удалось разобрать multipart-форму", http.StatusBadRequest)
				return
			}

			file, _, err := r.FormFile(field)
			if err != nil {
				if errors.Is(err, http.ErrMissingFile) {
					// поле не прислали: не ошибка, большинство полей опциональны
					next.ServeHTTP(w, r)
					return
				}
				writeError(w, "Не удалось прочитать файл", http.StatusBadRequest)
				return
			}
			defer file.Close()

			data, err := io.ReadAll(file)
			if err != nil {
				logrus.Errorf("ошибка при чтении загруженного файла: %v", err)
				writeError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
				return
			}

			publicPath, err := upload.ProcessImage(r.Context(), data, width, height)
			if err != nil {
				logrus.Errorf("ошибка при обработке изображения: %v", err)
				writeError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUploadPath, publicPath)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
