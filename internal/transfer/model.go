package transfer

import "time"

// Statuses of a transfer. A record starts pending and transitions to success or
// failed exactly once when the gateway notification settles it.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Transfer represents a peer-to-peer payment between two users. Immutable once
// created except Status.
type Transfer struct {
	ID          string
	OrderID     string
	SenderID    string
	RecipientID string
	Amount      int64
	Note        string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
