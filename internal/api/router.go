package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/meur/dotasource/internal/config"
	"github.com/meur/dotasource/internal/source"
	"github.com/meur/dotasource/internal/storage"
)

// Server holds the HTTP server dependencies
type Server struct {
	store       *storage.Store
	loader      source.Loader
	baseURL     string
	secretToken string
	origins     []string
	log         *zap.Logger
	router      chi.Router
}

// New creates a new API server
func New(store *storage.Store, loader source.Loader, cfg config.Config, log *zap.Logger) *Server {
	s := &Server{
		store:       store,
		loader:      loader,
		baseURL:     cfg.Source.BaseURL,
		secretToken: cfg.Source.SecretToken,
		origins:     cfg.Server.AllowedOrigins,
		log:         log,
		router:      chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	// Legacy single endpoint: /GetSource?type=...&token=...&pretty=1
	s.router.With(s.requireToken).Get("/GetSource", s.handleGetSource)

	s.router.Route("/api", func(r chi.Router) {
		// Sources
		r.Get("/sources", s.handleListSources)
		r.With(s.requireToken).Get("/sources/{kind}", s.handleSerializeSource)

		// Snapshots
		r.Get("/snapshots", s.handleListSnapshots)
		r.Get("/snapshots/latest/{kind}", s.handleGetLatestSnapshot)
		r.Get("/snapshots/{id}", s.handleGetSnapshot)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// requestLogger logs one line per request through zap
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondPretty writes indented JSON
func respondPretty(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
