package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/chat-session", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/message", h.SubmitMessage)
		r.Post("/{id}/reset", h.ResetSession)
		r.Post("/{id}/plan", h.GeneratePlan)
		r.Post("/{id}/estimates", h.Estimates)
		r.Get("/{id}/export", h.Export)
	})
}
