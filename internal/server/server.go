package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/pgagent/internal/config"
	"github.com/ziadkadry99/pgagent/internal/docsearch"
	"github.com/ziadkadry99/pgagent/internal/forms"
	"github.com/ziadkadry99/pgagent/internal/history"
	"github.com/ziadkadry99/pgagent/internal/logging"
	"github.com/ziadkadry99/pgagent/internal/prefs"
	"github.com/ziadkadry99/pgagent/internal/querygen"
	"github.com/ziadkadry99/pgagent/internal/schema"
	"github.com/ziadkadry99/pgagent/internal/troubleshoot"
	"github.com/ziadkadry99/pgagent/internal/view"
)

// localBase is the origin the in-process form controller resolves actions
// against. Requests never leave the process.
var localBase = &url.URL{Scheme: "http", Host: "pgagent.local"}

// Server is the pgagent HTTP server: the page, its form bridge and the
// backend JSON API.
type Server struct {
	cfg        *config.Config
	deps       *Deps
	log        zerolog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with every feature route mounted.
func New(cfg *config.Config, deps *Deps) (*Server, error) {
	s := &Server{
		cfg:  cfg,
		deps: deps,
		log:  logging.New("server"),
	}

	r, err := s.buildRouter()
	if err != nil {
		return nil, err
	}
	s.router = r
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() (chi.Router, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logging.New("http")))
	r.Use(Metrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{view.OutcomeHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	d := s.deps
	prefs.RegisterRoutes(r, d.DB)
	history.RegisterRoutes(r, d.History)
	querygen.RegisterRoutes(r, d.History, logging.New("querygen"))
	troubleshoot.RegisterRoutes(r, d.Errors, d.History, logging.New("troubleshoot"))
	schema.RegisterRoutes(r, d.Schema, d.History, logging.New("schema"))
	docsearch.RegisterRoutes(r, d.Docs, d.History, logging.New("docs"))

	ctrl, err := s.controller(r)
	if err != nil {
		return nil, err
	}
	opts := []view.Option{
		view.WithDocs(d.Docs, d.Markdown),
		view.WithLogger(logging.New("view")),
	}
	if d.Highlighter != nil {
		opts = append(opts, view.WithHighlighter(d.Highlighter))
	}
	view.NewInitializer(ctrl, opts...).RegisterRoutes(r, d.DB)

	return r, nil
}

// controller builds the form controller. Without a backend_url it serves
// submissions from r in-process.
func (s *Server) controller(r http.Handler) (*forms.Controller, error) {
	opts := []forms.Option{
		forms.WithDefaultRenderers(s.deps.Highlighter),
		forms.WithTimeout(s.cfg.RequestTimeout()),
		forms.WithLogger(logging.New("forms")),
	}

	if s.cfg.BackendURL == "" {
		opts = append(opts,
			forms.WithHTTPClient(&http.Client{Transport: forms.HandlerTransport{Handler: r}}),
			forms.WithBaseURL(localBase),
		)
		return forms.NewController(opts...), nil
	}

	base, err := url.Parse(s.cfg.BackendURL)
	if err != nil || !base.IsAbs() {
		return nil, fmt.Errorf("invalid backend_url %q", s.cfg.BackendURL)
	}
	opts = append(opts, forms.WithBaseURL(base))
	return forms.NewController(opts...), nil
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info().Str("addr", addr).Msg("pgagent server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
