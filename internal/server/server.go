package server

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lazypower/memoria/internal/config"
	"github.com/lazypower/memoria/internal/share"
	"github.com/lazypower/memoria/internal/suggest"
)

// Server is the memoria HTTP API. It holds no memories: every request
// carries its own token and gets its answer from that alone.
type Server struct {
	cfg      config.Config
	share    share.Options
	sessions *suggest.Sessions
	log      zerolog.Logger
	router   chi.Router
	ui       fs.FS
	version  string
	started  time.Time
}

// New creates a new Server. sessions may be nil when no LLM provider is
// configured; suggestions then answer with the fallback text.
func New(cfg config.Config, sessions *suggest.Sessions, log zerolog.Logger, version string) *Server {
	if sessions == nil {
		sessions = suggest.NewSessions(suggest.NewGenerator(nil, cfg.LLM.Timeout, log))
	}
	s := &Server{
		cfg:      cfg,
		share:    share.Options{MaxTokenLength: cfg.Share.MaxTokenLength},
		sessions: sessions,
		log:      log,
		version:  version,
		started:  time.Now(),
		ui:       uiFS,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(MaxBodySize(s.cfg.Server.MaxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/memories", s.handleCreateMemory)
		r.Post("/memories/open", s.handleOpenMemory)
		r.Post("/memories/unlock", s.handleUnlockMemory)

		r.Post("/suggest", s.handleSuggest)
	})

	r.Get("/*", s.handleUI)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                "ok",
		"version":               s.version,
		"uptime":                time.Since(s.started).Seconds(),
		"llm":                   s.cfg.LLM.Provider,
		"suggestions_in_flight": s.sessions.InFlight(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
