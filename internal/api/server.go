package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/questgen/internal/config"
	"github.com/dgallion1/questgen/internal/metrics"
	"github.com/dgallion1/questgen/internal/pipeline"
	"github.com/dgallion1/questgen/internal/upload"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the HTTP API server for questgen.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	uploads      *upload.Store
	stats        *metrics.Phases
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, uploads *upload.Store, stats *metrics.Phases, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		uploads:      uploads,
		stats:        stats,
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
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(SecurityHeaders)

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// The browser form cannot send a bearer token, so it is only served
	// when the API is open.
	if s.cfg.APIKey == "" {
		r.Get("/", s.handleIndex)
		r.Post("/", s.handleIndexSubmit)
	}

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/questions", s.handleQuestions)
		r.Post("/api/jobs", s.handleSubmitJob)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/languages", s.handleLanguages)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
