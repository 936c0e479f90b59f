package activity

import (
	"testing"
	"time"

	"github.com/kasku-app/kasku/internal/splitbill"
	"github.com/kasku-app/kasku/internal/topup"
	"github.com/kasku-app/kasku/internal/transfer"
)

func TestNormalizeTransferDirectionAndTitle(t *testing.T) {
	now := time.Now().UTC()
	rec := transfer.Transfer{ID: "t1", SenderID: "u1", RecipientID: "u2", Amount: 15_000, Status: transfer.StatusSuccess, CreatedAt: now}

	outgoing, ok := normalizeTransfer(rec, "u1")
	if !ok {
		t.Fatal("expected usable timestamp")
	}
	if !outgoing.IsOutgoing || outgoing.Title != "Sent" {
		t.Fatalf("sender view wrong: %+v", outgoing)
	}
	if outgoing.Subtitle != "to u2" {
		t.Fatalf("expected recipient subtitle, got %q", outgoing.Subtitle)
	}

	incoming, _ := normalizeTransfer(rec, "u2")
	if incoming.IsOutgoing || incoming.Title != "Received" {
		t.Fatalf("recipient view wrong: %+v", incoming)
	}
}

func TestNormalizeTransferPrefersNote(t *testing.T) {
	rec := transfer.Transfer{ID: "t1", SenderID: "u1", RecipientID: "u2", Note: "Bayar kos", Amount: 15_000, CreatedAt: time.Now()}
	item, _ := normalizeTransfer(rec, "u1")
	if item.Title != "Bayar kos" {
		t.Fatalf("expected note as title, got %q", item.Title)
	}
}

func TestNormalizeTransferFallsBackToUpdatedAt(t *testing.T) {
	updated := time.Date(2025, 10, 2, 10, 0, 0, 0, time.UTC)
	rec := transfer.Transfer{ID: "t1", SenderID: "u1", Amount: 15_000, UpdatedAt: updated}
	item, ok := normalizeTransfer(rec, "u1")
	if !ok {
		t.Fatal("expected fallback timestamp to be usable")
	}
	if !item.Timestamp.Equal(updated) {
		t.Fatalf("expected updated-at fallback, got %v", item.Timestamp)
	}
}

func TestNormalizeSplitDefaults(t *testing.T) {
	rec := splitbill.SplitBill{ID: "s1", TotalAmount: 45_000, CreatedBy: "u1", Participants: []string{"u1", "u2", "u3"}, CreatedAt: time.Now()}

	item, _ := normalizeSplit(rec)
	if !item.IsOutgoing {
		t.Fatal("split bills are always outgoing")
	}
	if item.Title != "Split Bill" {
		t.Fatalf("expected default title, got %q", item.Title)
	}
	if item.Subtitle != "3 participants" {
		t.Fatalf("expected participant count subtitle, got %q", item.Subtitle)
	}
	if item.Status != splitbill.StatusSuccess {
		t.Fatalf("expected default status, got %q", item.Status)
	}
	if item.Amount != 45_000 {
		t.Fatalf("expected total amount, got %d", item.Amount)
	}
}

func TestNormalizeSplitKeepsName(t *testing.T) {
	rec := splitbill.SplitBill{ID: "s1", BillName: "Nonton Bioskop", TotalAmount: 45_000, CreatedAt: time.Now()}
	item, _ := normalizeSplit(rec)
	if item.Title != "Nonton Bioskop" {
		t.Fatalf("expected bill name, got %q", item.Title)
	}
}

func TestNormalizeTopUp(t *testing.T) {
	rec := topup.TopUp{ID: "p1", UserID: "u1", Amount: 100_000, Method: "gopay", Status: topup.StatusSuccess, CreatedAt: time.Now()}
	item, _ := normalizeTopUp(rec)
	if item.IsOutgoing {
		t.Fatal("top-ups are never outgoing")
	}
	if item.Title != "gopay" {
		t.Fatalf("expected method as title, got %q", item.Title)
	}

	rec.Method = ""
	item, _ = normalizeTopUp(rec)
	if item.Title != "Top Up" {
		t.Fatalf("expected default title, got %q", item.Title)
	}
}

func TestNormalizeMissingAmountCoercesToZero(t *testing.T) {
	item, _ := normalizeTransfer(transfer.Transfer{ID: "t1", SenderID: "u1", CreatedAt: time.Now()}, "u1")
	if item.Amount != 0 {
		t.Fatalf("expected zero amount, got %d", item.Amount)
	}
}
