package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /api prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/mode", h.GetMode)
		r.Put("/mode", h.SetMode)
		r.Post("/calculate", h.Calculate)
		r.Post("/fields/clear", h.ClearFields)
		r.Post("/example", h.LoadExample)
		r.Get("/history", h.History)
		r.Get("/history/last", h.LastInputs)
		r.Delete("/history", h.ClearHistory)
	})
}
