package archivehttp

import (
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sir_venger/media_archive/pkg/httperrors"
)

// deleteFile навсегда убирает файл из архива.
func (a *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "fileName")

	if err := a.svc.Delete(r.Context(), name); err != nil {
		httperrors.Write(w, err)
		return
	}

	log.Printf("DELETE %s removed", name)
	_, _ = io.WriteString(w, "File deleted successfully")
}
