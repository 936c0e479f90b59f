package topup

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kasku-app/kasku/internal/identity"
)

// Handler exposes top-up HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a top-up HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

type topupResponse struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method,omitempty"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
	Token     string `json:"token,omitempty"`
}

// Create initiates a top-up for the authenticated user.
func (h *Handler) Create(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Create(c.UserContext(), CreateInput{UserID: uid, Amount: req.Amount, Method: req.Method})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrGateway):
			return fiber.NewError(http.StatusBadGateway, "payment gateway unavailable")
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(toResponse(res.TopUp, res.Token))
}

// History lists the authenticated user's top-ups, newest first.
func (h *Handler) History(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	topups, err := h.service.History(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]topupResponse, 0, len(topups))
	for _, t := range topups {
		out = append(out, toResponse(t, ""))
	}
	return c.Status(http.StatusOK).JSON(out)
}

func toResponse(t TopUp, token string) topupResponse {
	return topupResponse{
		ID:        t.ID,
		OrderID:   t.OrderID,
		UserID:    t.UserID,
		Amount:    t.Amount,
		Method:    t.Method,
		Status:    t.Status,
		CreatedAt: t.CreatedAt.UnixMilli(),
		Token:     token,
	}
}
