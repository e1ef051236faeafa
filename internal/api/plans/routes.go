package plans

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers plan archive routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/plans", func(r chi.Router) {
		r.Post("/", h.SavePlan)
		r.Get("/", h.ListPlans)
		r.Get("/{id}", h.GetPlan)
		r.Delete("/{id}", h.DeletePlan)
	})
}
