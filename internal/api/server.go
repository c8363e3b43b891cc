package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docedit/internal/config"
	"github.com/dgallion1/docedit/internal/pipeline"
	"github.com/dgallion1/docedit/internal/stats"
	"github.com/dgallion1/docedit/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docedit.
type Server struct {
	router       chi.Router
	sessions     *store.Store
	orchestrator *pipeline.Orchestrator
	stats        *stats.Service
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sessions *store.Store, orch *pipeline.Orchestrator, st *stats.Service, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions:     sessions,
		orchestrator: orch,
		stats:        st,
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
		r.Use(AuthMiddleware(s.cfg.DoceditAPIKey, s.log))

		r.Post("/api/documents", s.handleOpenDocument)
		r.Get("/api/documents", s.handleListDocuments)
		r.Delete("/api/documents/{docID}", s.handleCloseDocument)
		r.Get("/api/documents/{docID}/outline", s.handleOutline)
		r.Get("/api/documents/{docID}/export", s.handleExport)
		r.Post("/api/documents/{docID}/edits", s.handleEdits)
		r.Get("/api/documents/{docID}/properties", s.handleGetProperties)
		r.Put("/api/documents/{docID}/properties", s.handleSetProperties)

		r.Post("/api/batch", s.handleBatchEdit)
		r.Get("/api/batch/{jobID}/status", s.handleBatchStatus)
		r.Get("/api/batch/{jobID}/result", s.handleBatchResult)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
