package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", h.Health)
	r.Get("/api/products", h.ListProducts)

	r.Group(func(r chi.Router) {
		r.Use(h.sessions.middleware)

		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddItem)
			r.Put("/items/{id}", h.SetQuantity)
			r.Delete("/items/{id}", h.RemoveItem)
			r.Post("/items/{id}/remove", h.RemoveItem)
			r.Post("/items/{id}/increment", h.Increment)
			r.Post("/items/{id}/decrement", h.Decrement)
			r.Post("/open", h.Open)
			r.Post("/close", h.Close)
			r.Post("/toggle", h.Toggle)
			r.Post("/clear", h.Clear)
			r.Post("/checkout", h.Checkout)
		})

		r.Get("/cart/drawer", h.Drawer)
		r.Get("/cart/trigger", h.Trigger)
	})

	return r
}
