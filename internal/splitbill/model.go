package splitbill

import "time"

// StatusSuccess is the only status split bills carry today; the field exists so
// a future settlement flow can reuse it.
const StatusSuccess = "Success"

// SplitBill allocates a total amount across named participant shares. Immutable
// after creation.
type SplitBill struct {
	ID           string
	BillName     string
	TotalAmount  int64
	Category     string
	CreatedBy    string
	Participants []string
	Shares       map[string]int64
	Status       string
	CreatedAt    time.Time
}
