package coach

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers coach session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/coach-session", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Get("/history", h.History)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/recording/start", h.StartRecording)
		r.Post("/{id}/recording/frames", h.AppendFrame)
		r.Post("/{id}/recording/tick", h.Tick)
		r.Post("/{id}/recording/stop", h.StopRecording)
		r.Post("/{id}/reset", h.Reset)
	})
}
