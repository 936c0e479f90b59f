package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kasku-app/kasku/internal/payment"
)

// RegisterPaymentRoutes wires the gateway notification webhook. The gateway
// authenticates with its payload signature, not a bearer token.
func RegisterPaymentRoutes(app *fiber.App, h *payment.Handler) {
	app.Post("/api/v1/payments/notify", h.Notify)
}
