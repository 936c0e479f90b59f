package activity

import (
	"fmt"
	"time"

	"github.com/kasku-app/kasku/internal/splitbill"
	"github.com/kasku-app/kasku/internal/topup"
	"github.com/kasku-app/kasku/internal/transfer"
)

// Display fallbacks for records that carry no label of their own.
const (
	titleSent      = "Sent"
	titleReceived  = "Received"
	titleSplitBill = "Split Bill"
	titleTopUp     = "Top Up"
)

// eventTime returns the first non-zero candidate, preserving the documented
// precedence order. ok is false when every candidate is missing; the caller
// keeps the zero-time sentinel and reports the record as a data-quality
// concern.
func eventTime(candidates ...time.Time) (time.Time, bool) {
	for _, t := range candidates {
		if !t.IsZero() {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeTransfer maps a transfer onto the feed shape. Direction is decided
// by the sender: the feed owner sent the money iff they are the sender.
func normalizeTransfer(t transfer.Transfer, userID string) (Item, bool) {
	out := t.SenderID == userID

	title := t.Note
	if title == "" {
		if out {
			title = titleSent
		} else {
			title = titleReceived
		}
	}

	subtitle := ""
	if t.RecipientID != "" {
		subtitle = "to " + t.RecipientID
	}

	ts, ok := eventTime(t.CreatedAt, t.UpdatedAt)
	return Item{
		Kind:       KindTransfer,
		Timestamp:  ts,
		Amount:     t.Amount,
		Title:      title,
		Subtitle:   subtitle,
		IsOutgoing: out,
		Status:     t.Status,
		Source:     t,
	}, ok
}

// normalizeSplit maps a split bill onto the feed shape. A split bill is always
// an outgoing commitment, whether the user created it or only participates.
func normalizeSplit(b splitbill.SplitBill) (Item, bool) {
	title := b.BillName
	if title == "" {
		title = titleSplitBill
	}

	status := b.Status
	if status == "" {
		status = splitbill.StatusSuccess
	}

	ts, ok := eventTime(b.CreatedAt)
	return Item{
		Kind:       KindSplit,
		Timestamp:  ts,
		Amount:     b.TotalAmount,
		Title:      title,
		Subtitle:   fmt.Sprintf("%d participants", len(b.Participants)),
		IsOutgoing: true,
		Status:     status,
		Source:     b,
	}, ok
}

// normalizeTopUp maps a top-up onto the feed shape. Top-ups are never outgoing.
func normalizeTopUp(t topup.TopUp) (Item, bool) {
	title := t.Method
	if title == "" {
		title = titleTopUp
	}

	ts, ok := eventTime(t.CreatedAt, t.UpdatedAt)
	return Item{
		Kind:       KindTopUp,
		Timestamp:  ts,
		Amount:     t.Amount,
		Title:      title,
		IsOutgoing: false,
		Status:     t.Status,
		Source:     t,
	}, ok
}
