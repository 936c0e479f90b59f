package topup

import "time"

// Statuses of a top-up. A record starts pending and settles through the
// gateway notification.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// TopUp represents a balance-increasing payment settled through the external
// gateway.
type TopUp struct {
	ID        string
	OrderID   string
	UserID    string
	Amount    int64
	Method    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
