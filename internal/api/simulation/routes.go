package simulation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers simulation routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/simulation", func(r chi.Router) {
		r.Post("/", h.StartSimulation)
		r.Get("/{id}", h.GetSimulation)
		r.Post("/{id}/turns", h.SubmitTurn)
		r.Post("/{id}/turns/audio", h.SubmitVoiceTurn)
		r.Post("/{id}/end", h.EndSimulation)
	})
}
