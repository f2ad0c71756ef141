package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/media_archive/internal/models"
)

// Write переводит ошибку ядра в HTTP-статус на границе запроса.
// Наружу уходит только короткое сообщение: внутренние пути и причины не раскрываются.
func Write(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, models.ErrNotFound.Error(), http.StatusNotFound)
	default:
		// Сюда же попадает ErrBadRequest: поле без имени файла валит весь запрос с 500.
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
