package survey

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers survey routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/survey", func(r chi.Router) {
		r.Post("/events", h.SessionEvent)
		r.Get("/{id}", h.GetSurvey)
		r.Get("/{id}/progress", h.GetProgress)
		r.Post("/{id}/answers", h.Answer)
		r.Post("/{id}/submit", h.Submit)
	})
}
