package archivehttp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/oxtoacart/bpool"

	"github.com/sir_venger/media_archive/internal/config"
	"github.com/sir_venger/media_archive/internal/models"
	"github.com/sir_venger/media_archive/internal/usecase/archive"
	"github.com/sir_venger/media_archive/pkg/archiveproto"
)

const responseChunkSize = 64 * 1024

// Server serves the media archive HTTP API on top of the local filesystem.
type Server struct {
	svc          archive.Service
	pool         *bpool.BytePool
	maxBodyBytes int64
}

// New создаёт HTTP-обработчик архива из конфигурации.
func New(cfg *config.Config) http.Handler {
	return NewWithService(archive.New(archive.Deps{Root: cfg.ArchiveDir}), cfg.MaxBodyBytes)
}

// NewWithService собирает обработчик поверх готового сервиса; удобно в тестах.
func NewWithService(svc archive.Service, maxBodyBytes int64) http.Handler {
	srv := &Server{
		svc:          svc,
		pool:         bpool.NewBytePool(16, responseChunkSize),
		maxBodyBytes: maxBodyBytes,
	}

	return srv.routes()
}

// routes регистрирует обработчики операций архива и fallback.
func (a *Server) routes() http.Handler {
	r := chi.NewRouter()

	// CORS: любые источники и заголовки, методы — только операции архива.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodGet, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	}))

	r.Post(archiveproto.UploadPath, a.upload)
	r.Get(archiveproto.ArchivePath, a.listArchive)
	r.Get("/stream/{fileName}", a.stream)
	r.Delete("/delete/{fileName}", a.deleteFile)
	r.Get(archiveproto.HealthPath, a.health)

	r.NotFound(a.fallback)
	r.MethodNotAllowed(a.fallback)

	return r
}

// fallback отвечает единым JSON-телом на запросы без маршрута.
func (a *Server) fallback(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(models.ResponseError{
		Message: "",
		Error:   "page not found",
	})
}
