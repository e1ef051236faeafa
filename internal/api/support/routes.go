package support

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers feedback and activity routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/feedback", h.SubmitFeedback)
	r.Post("/activity", h.LogActivity)
}
