package prefs

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers preference routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/preferences", func(r chi.Router) {
		r.Get("/{user_id}/{key}", h.GetPreference)
		r.Put("/{user_id}/{key}", h.SetPreference)
		r.Delete("/{user_id}/{key}", h.DeletePreference)
	})
}
