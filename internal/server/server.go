package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/botdocs/internal/app"
	"github.com/ziadkadry99/botdocs/internal/observability"
	"github.com/ziadkadry99/botdocs/internal/prefs"
	"github.com/ziadkadry99/botdocs/internal/render"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server serves view models over HTTP and live sessions over websockets.
type Server struct {
	cfg        Config
	content    *app.Content
	prefs      *prefs.Store
	site       render.Site
	markup     render.Markup
	logger     *zap.Logger
	sessions   *sessionRegistry
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over already loaded content.
func New(cfg Config, content *app.Content, store *prefs.Store, site render.Site, markup render.Markup, logger *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		content:  content,
		prefs:    store,
		site:     site,
		markup:   markup,
		logger:   observability.OrNop(logger),
		sessions: newSessionRegistry(),
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		RegisterRoutes(r, s)
	})

	// Websocket sessions outlive any request timeout.
	r.Get("/ws/session", s.handleSession)

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Content returns the content the server renders.
func (s *Server) Content() *app.Content { return s.content }

// Prefs returns the preference store.
func (s *Server) Prefs() *prefs.Store { return s.prefs }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("botdocs server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown closes live sessions and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.closeAll()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
