// Package server exposes the analyzer and the pipeline listing over HTTP.
package server

import (
	"fmt"
	"net/http"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/opnlabs/advisor/pkg/analyzer"
	"github.com/opnlabs/advisor/pkg/devops"
)

const DefaultMaxBodyBytes = 1 << 20

// Config holds the server settings. Username and password protect the
// pipeline listing routes; the analyze endpoint is open.
type Config struct {
	Addr         string `validate:"required"`
	Username     string `validate:"required"`
	Password     string `validate:"required"`
	MaxBodyBytes int64
}

// Server routes HTTP requests to the analyzer and the pipeline provider.
type Server struct {
	cfg      Config
	analyzer *analyzer.Analyzer
	provider devops.Provider
	validate *validator.Validate
	logger   *charmlog.Logger
	router   chi.Router
}

// New creates a Server from the given configuration and collaborators.
func New(cfg Config, a *analyzer.Analyzer, p devops.Provider) (*Server, error) {
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid server config: %v", err)
	}

	s := &Server{
		cfg:      cfg,
		analyzer: a,
		provider: p,
		validate: validate,
		logger: charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: true,
			Prefix:          "advisor",
		}),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/pipelines", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BasicAuth("advisor", map[string]string{
				s.cfg.Username: s.cfg.Password,
			}))
			r.Get("/", s.handleList)
			r.Get("/{id}/yaml", s.handleYAML)
		})
	})

	return r
}

// Handler returns the root HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", s.cfg.Addr)
	return srv.ListenAndServe()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
