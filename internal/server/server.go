// Package server provides the HTTP server for the import sorter backend.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bovan/import-sorter/internal/config"
	"github.com/bovan/import-sorter/internal/event"
	"github.com/bovan/import-sorter/internal/sorter"
)

// Config holds server configuration.
type Config struct {
	Port          int
	WorkspaceRoot string
	EnableCORS    bool
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:         8080,
		EnableCORS:   true,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // No write timeout for SSE
	}
}

// Server is the HTTP server. It owns the global event bus and the external
// processor; configuration is resolved fresh inside every handler so each
// request sees the current on-disk state.
type Server struct {
	config    *Config
	router    *chi.Mux
	httpSrv   *http.Server
	processor sorter.ImportProcessor
	bus       *event.Bus

	// settings is the editor-settings layer clients registered at startup.
	// Requests may carry their own layer, which replaces this one.
	settings config.Settings
}

// New creates a new Server instance.
func New(cfg *Config, processor sorter.ImportProcessor, settings config.Settings) *Server {
	s := &Server{
		config:    cfg,
		router:    chi.NewRouter(),
		processor: processor,
		bus:       event.NewBus(),
		settings:  settings,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures middleware for the server.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RealIP)

	if s.config.EnableCORS {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
}

// resolverFor builds the per-request configuration resolver. A request that
// carries its own settings layer overrides the server's registered layer;
// warnings are funneled to warn so handlers can return them to the caller.
func (s *Server) resolverFor(settings config.Settings, warn func(string)) *config.Resolver {
	if settings == nil {
		settings = s.settings
	}
	r := config.NewResolver(s.config.WorkspaceRoot, settings)
	r.OnWarning = warn
	return r
}

// Bus returns the server's event bus.
func (s *Server) Bus() *event.Bus {
	return s.bus
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
