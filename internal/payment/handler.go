package payment

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler receives gateway webhook notifications.
type Handler struct {
	reconciler *Reconciler
}

// NewHandler builds a webhook HTTP handler.
func NewHandler(reconciler *Reconciler) *Handler {
	return &Handler{reconciler: reconciler}
}

// Notify processes one gateway notification. The gateway retries on non-2xx
// responses, so transient failures return 500 while permanent ones return a
// final status.
func (h *Handler) Notify(c *fiber.Ctx) error {
	var n Notification
	if err := c.BodyParser(&n); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.reconciler.Apply(c.UserContext(), n); err != nil {
		switch {
		case errors.Is(err, ErrBadSignature):
			return fiber.NewError(http.StatusForbidden, "invalid signature")
		case errors.Is(err, ErrUnknownOrder):
			return fiber.NewError(http.StatusNotFound, "unknown order")
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}
