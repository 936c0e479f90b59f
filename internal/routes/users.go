package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kasku-app/kasku/internal/identity"
)

// RegisterUserRoutes wires the user directory and profile endpoints. The
// directory feeds recipient and participant pickers on the client.
func RegisterUserRoutes(r fiber.Router, ids *identity.Service) {
	r.Get("/users", func(c *fiber.Ctx) error {
		users, err := ids.List(c.UserContext())
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, "list users")
		}
		out := make([]fiber.Map, 0, len(users))
		for _, u := range users {
			out = append(out, fiber.Map{
				"user_id":        u.ID,
				"name":           u.Name,
				"account_number": u.AccountNumber,
			})
		}
		return c.JSON(fiber.Map{"users": out})
	})

	r.Get("/me", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		if uid == "" {
			return c.SendStatus(http.StatusUnauthorized)
		}
		user, err := ids.Get(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return c.JSON(fiber.Map{
			"user_id":        user.ID,
			"name":           user.Name,
			"email":          user.Email,
			"account_number": user.AccountNumber,
			"balance":        user.Balance,
			"created_at":     user.CreatedAt,
		})
	})
}
