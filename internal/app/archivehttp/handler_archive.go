package archivehttp

import (
	"encoding/json"
	"net/http"

	"github.com/sir_venger/media_archive/internal/models"
	"github.com/sir_venger/media_archive/pkg/httperrors"
)

// listArchive возвращает снимок содержимого каталога на момент перечисления.
func (a *Server) listArchive(w http.ResponseWriter, r *http.Request) {
	names, err := a.svc.List(r.Context())
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(models.ArchiveResponse{Files: names})
}
