package order

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/checkout", h.Checkout)
	r.Post("/checkout/{courseId}", h.Checkout)
	return r
}
