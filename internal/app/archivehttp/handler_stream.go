package archivehttp

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sir_venger/media_archive/pkg/archiveproto"
	"github.com/sir_venger/media_archive/pkg/httperrors"
)

// stream отдаёт файл почанково с заголовками для проигрывания видео в браузере.
func (a *Server) stream(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "fileName")

	rc, size, err := a.svc.OpenStream(r.Context(), name)
	if err != nil {
		httperrors.Write(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", archiveproto.StreamContentType)
	w.Header().Set("Accept-Ranges", archiveproto.AcceptRangesValue)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))

	// Сбой посреди копирования просто обрывает поток: статус уже отправлен,
	// возобновления нет. Ридер закрывается и при обрыве со стороны клиента.
	buf := a.pool.Get()
	if _, err := io.CopyBuffer(struct{ io.Writer }{w}, struct{ io.Reader }{rc}, buf); err != nil {
		log.Printf("STREAM %s aborted: %v", name, err)
	}
	a.pool.Put(buf)
}
