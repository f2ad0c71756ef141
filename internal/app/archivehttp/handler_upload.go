package archivehttp

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/sir_venger/media_archive/internal/models"
	"github.com/sir_venger/media_archive/pkg/httperrors"
)

// upload принимает multipart-запрос и пишет каждое поле в архив по мере чтения.
// Поля обрабатываются строго последовательно; атомарности между полями нет —
// сбой на середине оставляет уже записанные файлы на диске.
func (a *Server) upload(w http.ResponseWriter, r *http.Request) {
	if a.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, a.maxBodyBytes)
	}

	// MultipartReader отдаёт части лениво, не буферизуя тело целиком.
	mr, err := r.MultipartReader()
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	// Короткий id связывает строки лога одного запроса.
	reqID := uuid.NewString()[:8]

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("UPLOAD %s: read part: %v", reqID, err)
			httperrors.Write(w, err)
			return
		}

		name := part.FileName()
		if name == "" {
			// Поле без имени файла валит весь запрос целиком.
			log.Printf("UPLOAD %s: field without file name", reqID)
			httperrors.Write(w, models.ErrBadRequest)
			return
		}

		log.Printf("UPLOAD %s: writing %s", reqID, name)
		n, err := a.svc.SaveStream(r.Context(), name, part)
		if err != nil {
			log.Printf("UPLOAD %s: %s failed: %v", reqID, name, err)
			httperrors.Write(w, err)
			return
		}
		log.Printf("UPLOAD %s: %s done, %d bytes", reqID, name, n)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Video uploaded successfully")
}
