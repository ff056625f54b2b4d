package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter mounts the API, health and metrics endpoints
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", h.Search)
		r.Get("/searches/recent", h.RecentSearches)
		r.Get("/routes/history", h.RouteHistory)

		r.Route("/watchlist", func(r chi.Router) {
			r.Get("/", h.ListWatchlist)
			r.Post("/", h.AddEntry)
			r.Post("/refresh", h.RefreshAll)
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", h.UpdateEntry)
				r.Delete("/", h.RemoveEntry)
				r.Post("/refresh", h.RefreshEntry)
			})
		})

		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)
	})

	return r
}
