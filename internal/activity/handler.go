package activity

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the activity feed over HTTP.
type Handler struct {
	feed *Feed
}

// NewHandler builds an activity HTTP handler.
func NewHandler(feed *Feed) *Handler {
	return &Handler{feed: feed}
}

type itemResponse struct {
	Kind       string `json:"kind"`
	Date       int64  `json:"date"`
	Amount     int64  `json:"amount"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	IsOutgoing bool   `json:"out"`
	Status     string `json:"status,omitempty"`
}

// List returns the authenticated user's activity feed, newest first. An
// optional limit query parameter caps the result.
func (h *Handler) List(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	limit := c.QueryInt("limit", 0)

	items, err := h.feed.Recent(c.UserContext(), uid, limit)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		var date int64
		if !item.Timestamp.IsZero() {
			date = item.Timestamp.UnixMilli()
		}
		out = append(out, itemResponse{
			Kind:       string(item.Kind),
			Date:       date,
			Amount:     item.Amount,
			Title:      item.Title,
			Subtitle:   item.Subtitle,
			IsOutgoing: item.IsOutgoing,
			Status:     item.Status,
		})
	}
	return c.Status(http.StatusOK).JSON(out)
}
