package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docatlas/internal/asset"
	"github.com/dgallion1/docatlas/internal/config"
	"github.com/dgallion1/docatlas/internal/pipeline"
	"github.com/dgallion1/docatlas/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docatlas.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	store        *storage.Store
	assets       *asset.Service
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, store *storage.Store, assets *asset.Service, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		store:        store,
		assets:       assets,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/ingest", s.handleIngest)
		r.Get("/api/ingest/{jobID}/status", s.handleIngestStatus)
		r.Post("/api/ingest/batch", s.handleBatchIngest)

		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetManifest)
		r.Get("/api/documents/{docID}/text", s.handleGetFullText)
		r.Get("/api/documents/{docID}/assets/{assetType}/{assetID}", s.handleGetAsset)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

		r.Post("/api/chunk", s.handleChunkPreview)
		r.Post("/api/query", s.handleQuery)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
