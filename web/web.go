// Package web provides the HTTP API for the recommendation service.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/minsu-kang/steamrec/app"
	"github.com/minsu-kang/steamrec/ports"
)

// Handler provides the API endpoints.
type Handler struct {
	recommender *app.Recommender
	limiter     *app.PathLimiter
	apiKey      string
	metrics     ports.Metrics
	logger      zerolog.Logger
}

// Deps contains dependencies for the web handler.
type Deps struct {
	Recommender *app.Recommender
	Limiter     *app.PathLimiter
	APIKey      string // Empty disables API key checking
	Metrics     ports.Metrics
	Logger      zerolog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		recommender: deps.Recommender,
		limiter:     deps.Limiter,
		apiKey:      deps.APIKey,
		metrics:     deps.Metrics,
		logger:      deps.Logger.With().Str("component", "web").Logger(),
	}
}

// Router returns the service router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(h.RequestID)
	r.Use(h.RequestLogger)

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// The limiter runs before auth so over-quota callers are
		// rejected before any further work.
		r.Use(h.RateLimit)
		r.Use(h.RequireAPIKey)

		r.Get("/recommend/random", h.RandomGame)
		r.Post("/recommend/input", h.InputGame)
		r.Post("/recommend/profile", h.ProfileGame)
		r.Post("/recommend/recent", h.RecentPlayGame)
		r.Get("/tags", h.TagList)
	})

	return r
}

// Health responds once the process is serving.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
