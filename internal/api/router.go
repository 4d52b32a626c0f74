package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/zyho/litkeep/internal/litservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *litservice.Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Topic enumeration.
	r.Get("/topics", h.ListTopics)

	// Entries.
	r.Get("/entries", h.ListEntries)
	r.Post("/entries", h.CreateEntry)
	r.Put("/topics/{id}/entries/{n}/abstract", h.UpdateAbstract)

	// Search.
	r.Get("/search", h.Search)

	// Generated document.
	r.Get("/document", h.Document)

	return r
}
