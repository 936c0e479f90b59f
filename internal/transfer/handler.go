package transfer

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kasku-app/kasku/internal/identity"
)

// Handler exposes transfer HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a transfer HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	RecipientID string `json:"recipient_id"`
	Amount      int64  `json:"amount"`
	Note        string `json:"note"`
}

type transferResponse struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Amount      int64  `json:"amount"`
	Note        string `json:"note,omitempty"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
	Token       string `json:"token,omitempty"`
}

// Create initiates a transfer for the authenticated user.
func (h *Handler) Create(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Create(c.UserContext(), CreateInput{
		SenderID:    uid,
		RecipientID: req.RecipientID,
		Amount:      req.Amount,
		Note:        req.Note,
	})
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

	return c.Status(http.StatusCreated).JSON(toResponse(res.Transfer, res.Token))
}

// History lists the authenticated user's transfers, newest first.
func (h *Handler) History(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	transfers, err := h.service.History(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]transferResponse, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, toResponse(t, ""))
	}
	return c.Status(http.StatusOK).JSON(out)
}

func toResponse(t Transfer, token string) transferResponse {
	return transferResponse{
		ID:          t.ID,
		OrderID:     t.OrderID,
		SenderID:    t.SenderID,
		RecipientID: t.RecipientID,
		Amount:      t.Amount,
		Note:        t.Note,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.UnixMilli(),
		Token:       token,
	}
}
