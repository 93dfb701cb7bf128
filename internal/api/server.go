package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	coachapi "github.com/pitchperfect/pitch-backend/internal/api/coach"
	"github.com/pitchperfect/pitch-backend/internal/api/docs"
	"github.com/pitchperfect/pitch-backend/internal/api/middleware"
	prefsapi "github.com/pitchperfect/pitch-backend/internal/api/prefs"
	simulationapi "github.com/pitchperfect/pitch-backend/internal/api/simulation"
	suggestionapi "github.com/pitchperfect/pitch-backend/internal/api/suggestion"
	surveyapi "github.com/pitchperfect/pitch-backend/internal/api/survey"
	wizardapi "github.com/pitchperfect/pitch-backend/internal/api/wizard"
	"go.uber.org/zap"
)

// Handlers groups every feature handler wired by the builder.
type Handlers struct {
	Wizard     *wizardapi.Handler
	Coach      *coachapi.Handler
	Simulation *simulationapi.Handler
	Suggestion *suggestionapi.Handler
	Survey     *surveyapi.Handler
	Prefs      *prefsapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	wizardapi.RegisterRoutes(r, h.Wizard)
	coachapi.RegisterRoutes(r, h.Coach)
	simulationapi.RegisterRoutes(r, h.Simulation)
	suggestionapi.RegisterRoutes(r, h.Suggestion)
	surveyapi.RegisterRoutes(r, h.Survey)
	prefsapi.RegisterRoutes(r, h.Prefs)

	return r
}
