package server

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	r := s.router

	// Configuration
	r.Route("/config", func(r chi.Router) {
		r.Get("/", s.getConfig)
		r.Get("/presence", s.getConfigPresence)
	})

	// Per-document operations
	r.Route("/document", func(r chi.Router) {
		r.Post("/sort", s.sortDocument)
		r.Post("/will-save", s.willSaveDocument)
		r.Post("/preview", s.previewDocument)
	})

	// Directory batch (SSE progress stream)
	r.Post("/directory/sort", s.sortDirectory)

	// Event streaming (SSE)
	r.Get("/event", s.globalEvents)
}
