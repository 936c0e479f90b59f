package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kasku-app/kasku/internal/splitbill"
)

// RegisterSplitBillRoutes wires the split bill endpoints.
func RegisterSplitBillRoutes(r fiber.Router, h *splitbill.Handler) {
	group := r.Group("/split-bills")
	group.Post("/", h.Create)
	group.Get("/", h.List)
}
