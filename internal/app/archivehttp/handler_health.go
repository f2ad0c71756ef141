package archivehttp

import (
	"encoding/json"
	"net/http"

	"github.com/sir_venger/media_archive/pkg/httperrors"
)

// healthStats — payload ответа /health.
type healthStats struct {
	OK         bool  `json:"ok"`
	Files      int   `json:"files"`
	TotalBytes int64 `json:"total_bytes"`
}

// health возвращает агрегированную статистику по каталогу архива.
func (a *Server) health(w http.ResponseWriter, r *http.Request) {
	st, err := a.svc.Stats(r.Context())
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	// У архива нет сложных метрик: наружу уходят только счётчики и флаг OK.
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthStats{
		OK:         true,
		Files:      st.Files,
		TotalBytes: st.TotalBytes,
	})
}
