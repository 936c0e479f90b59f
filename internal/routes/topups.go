package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kasku-app/kasku/internal/topup"
)

// RegisterTopUpRoutes wires the balance top-up endpoints.
func RegisterTopUpRoutes(r fiber.Router, h *topup.Handler) {
	group := r.Group("/topups")
	group.Post("/", h.Create)
	group.Get("/", h.History)
}
