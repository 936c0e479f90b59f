package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kasku-app/kasku/internal/transfer"
)

// RegisterTransferRoutes wires the peer-to-peer transfer endpoints.
func RegisterTransferRoutes(r fiber.Router, h *transfer.Handler) {
	group := r.Group("/transfers")
	group.Post("/", h.Create)
	group.Get("/", h.History)
}
