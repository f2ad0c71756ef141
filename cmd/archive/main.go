package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sir_venger/media_archive/internal/app/archivehttp"
	"github.com/sir_venger/media_archive/internal/config"
	"github.com/sir_venger/media_archive/internal/usecase/archive"
)

// main инициализирует HTTP-сервис архива и обеспечивает корректное завершение по сигналу.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	svc := archive.New(archive.Deps{Root: cfg.ArchiveDir})
	handler := archivehttp.NewWithService(svc, cfg.MaxBodyBytes)

	// Периодический отчёт о наполнении архива; нулевой интервал его выключает.
	stopMonitor := svc.StartMonitor(cfg.StatsInterval)
	defer stopMonitor()

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("ARCHIVE shutdown error: %v", err)
		}
	}()

	log.Printf("ARCHIVE listening on %s (dir=%s)", cfg.ListenAddr, cfg.ArchiveDir)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("ARCHIVE final shutdown error: %v", err)
	}
}
