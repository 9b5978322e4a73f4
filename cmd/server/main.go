package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docatlas/internal/api"
	"github.com/dgallion1/docatlas/internal/asset"
	"github.com/dgallion1/docatlas/internal/config"
	"github.com/dgallion1/docatlas/internal/lightrag"
	"github.com/dgallion1/docatlas/internal/pipeline"
	"github.com/dgallion1/docatlas/internal/storage"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage and clients.
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	rag := lightrag.NewClient(cfg.LightRAGURL)
	if !rag.Available(ctx) {
		log.Warn("lightrag unreachable, documents will be stored without indexing", "url", cfg.LightRAGURL)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, rag, store, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, store, asset.NewService(store), log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		rag.Close()
	}()

	log.Info("starting docatlas", "port", cfg.Port, "data_dir", cfg.DataDir)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
