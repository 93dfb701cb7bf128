package wizard

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers wizard and pitch routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/wizard-session", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/step", h.ConfirmStep)
		r.Post("/{id}/back", h.Back)
		r.Post("/{id}/generate", h.Generate)
		r.Post("/{id}/prefill/url", h.PrefillFromURL)
		r.Post("/{id}/prefill/document", h.PrefillFromDocument)
	})

	r.Route("/pitch", func(r chi.Router) {
		r.Get("/{id}", h.GetPitch)
		r.Get("/{id}/export", h.Export)
		r.Get("/{id}/audio", h.AudioPreview)
		r.Post("/{id}/versions", h.SaveVersion)
		r.Get("/{id}/versions", h.ListVersions)
		r.Post("/{id}/versions/{version_id}/restore", h.RestoreVersion)
	})
}
