package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all interest conversion routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/fin/icnv", func(r chi.Router) {
		r.Post("/nominal-to-effective", h.HandleNominalToEffective)
		r.Post("/effective-to-nominal", h.HandleEffectiveToNominal)
	})
}
