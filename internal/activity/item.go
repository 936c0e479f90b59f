package activity

import "time"

// Kind tags the record stream an item came from.
type Kind string

// Activity kinds.
const (
	KindTransfer Kind = "transfer"
	KindSplit    Kind = "split"
	KindTopUp    Kind = "topup"
)

// Item is one entry of the unified activity feed. It is a derived view built
// fresh on every aggregation call and is never written back.
//
// A zero Timestamp is the explicit missing-timestamp sentinel: the record had
// no usable creation time, and it sorts oldest instead of being silently
// stamped with the current time.
type Item struct {
	Kind       Kind
	Timestamp  time.Time
	Amount     int64
	Title      string
	Subtitle   string
	IsOutgoing bool
	Status     string
	Source     any
}
