package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgallion1/docshape/internal/config"
	"github.com/dgallion1/docshape/internal/content"
	"github.com/dgallion1/docshape/internal/generate"
	"github.com/dgallion1/docshape/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server is the HTTP API server for docshape.
type Server struct {
	router    chi.Router
	processor *content.Processor
	renderer  *render.Renderer
	gen       generate.Generator
	stats     *generate.LatencyStats
	log       *slog.Logger
	cfg       config.Config

	now   func() time.Time
	newID func() string
}

// NewServer creates and configures the HTTP server. stats may be nil when
// the generator does not record latency.
func NewServer(gen generate.Generator, stats *generate.LatencyStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		processor: content.NewProcessor(log),
		renderer:  render.New(),
		gen:       gen,
		stats:     stats,
		log:       log,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
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
		r.Use(AuthMiddleware(s.cfg.DocshapeAPIKey, s.log))

		r.Route("/api/content", func(r chi.Router) {
			r.Post("/process", s.handleProcess)
			r.Post("/recover", s.handleRecover)
			r.Post("/batch", s.handleBatch)
			r.Post("/upload", s.handleUpload)
			r.Post("/render", s.handleRender)
		})

		r.Post("/api/structured", s.handleStructured)
		r.Post("/api/rag/structured", s.handleRagStructured)
		r.Post("/api/title", s.handleTitle)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decodeJSON reads a JSON request body of at most limit bytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
