package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all TVM routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/fin/tvm", func(r chi.Router) {
		r.Post("/pv", h.HandleCalculatePresentValue)
		r.Post("/fv", h.HandleCalculateFutureValue)
		r.Post("/pmt", h.HandleCalculatePayment)
		r.Post("/n", h.HandleCalculatePeriods)
		r.Post("/i", h.HandleCalculateInterestRate)
	})
}
