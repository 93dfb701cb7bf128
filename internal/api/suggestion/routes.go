package suggestion

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers suggestion routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/suggestions", func(r chi.Router) {
		r.Get("/", h.GetBatch)
		r.Post("/regenerate", h.Regenerate)
		r.Post("/select", h.SelectSuggestion)
	})
}
