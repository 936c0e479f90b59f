package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kasku-app/kasku/internal/activity"
)

// RegisterActivityRoutes wires the merged activity feed endpoint.
func RegisterActivityRoutes(r fiber.Router, h *activity.Handler) {
	r.Get("/activity", h.List)
}
