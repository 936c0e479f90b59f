package splitbill

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes split bill HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a split bill HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	BillName    string           `json:"bill_name"`
	TotalAmount int64            `json:"total_amount"`
	Category    string           `json:"category"`
	Shares      map[string]int64 `json:"shares"`
}

type billResponse struct {
	ID           string           `json:"id"`
	BillName     string           `json:"bill_name"`
	TotalAmount  int64            `json:"total_amount"`
	Category     string           `json:"category"`
	CreatedBy    string           `json:"created_by"`
	Participants []string         `json:"participants"`
	Shares       map[string]int64 `json:"shares"`
	Status       string           `json:"status"`
	CreatedAt    int64            `json:"created_at"`
}

// Create validates and persists a split bill for the authenticated user.
func (h *Handler) Create(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	bill, err := h.service.Create(c.UserContext(), CreateInput{
		BillName:    req.BillName,
		TotalAmount: req.TotalAmount,
		Category:    req.Category,
		Shares:      req.Shares,
		CreatedBy:   uid,
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error":        verr.Error(),
				"share_sum":    verr.Sum,
				"total_amount": verr.Total,
			})
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(toResponse(bill))
}

// List returns the authenticated user's split bills, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	bills, err := h.service.ForUser(c.UserContext(), uid)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]billResponse, 0, len(bills))
	for _, bill := range bills {
		out = append(out, toResponse(bill))
	}
	return c.Status(http.StatusOK).JSON(out)
}

func toResponse(bill SplitBill) billResponse {
	return billResponse{
		ID:           bill.ID,
		BillName:     bill.BillName,
		TotalAmount:  bill.TotalAmount,
		Category:     bill.Category,
		CreatedBy:    bill.CreatedBy,
		Participants: bill.Participants,
		Shares:       bill.Shares,
		Status:       bill.Status,
		CreatedAt:    bill.CreatedAt.UnixMilli(),
	}
}
