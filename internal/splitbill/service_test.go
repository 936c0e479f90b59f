package splitbill

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreateSplitBill(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	bill, err := svc.Create(ctx, CreateInput{
		BillName:    "Makan Malam",
		TotalAmount: 50_000,
		Category:    "Food",
		Shares:      map[string]int64{"user-a": 30_000, "user-b": 20_000},
		CreatedBy:   "user-a",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if bill.ID == "" || bill.CreatedAt.IsZero() {
		t.Fatalf("expected server-assigned id and timestamp, got %+v", bill)
	}
	if !reflect.DeepEqual(bill.Participants, []string{"user-a", "user-b"}) {
		t.Fatalf("expected participants derived from share keys, got %v", bill.Participants)
	}
	if bill.Status != StatusSuccess {
		t.Fatalf("expected default status %q, got %q", StatusSuccess, bill.Status)
	}
}

func TestCreateSplitBillShareSumMismatch(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.Create(context.Background(), CreateInput{
		BillName:    "Makan Malam",
		TotalAmount: 50_000,
		Category:    "Food",
		Shares:      map[string]int64{"user-a": 30_000, "user-b": 15_000},
		CreatedBy:   "user-a",
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Sum != 45_000 || verr.Total != 50_000 {
		t.Fatalf("expected sum 45000 and total 50000, got %+v", verr)
	}
}

func TestCreateSplitBillRejectsBadInput(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"empty name", CreateInput{TotalAmount: 10_000, Shares: map[string]int64{"a": 10_000}, CreatedBy: "a"}},
		{"zero total", CreateInput{BillName: "x", Shares: map[string]int64{"a": 0}, CreatedBy: "a"}},
		{"no shares", CreateInput{BillName: "x", TotalAmount: 10_000, CreatedBy: "a"}},
		{"negative share", CreateInput{BillName: "x", TotalAmount: 10_000, Shares: map[string]int64{"a": 20_000, "b": -10_000}, CreatedBy: "a"}},
		{"no creator", CreateInput{BillName: "x", TotalAmount: 10_000, Shares: map[string]int64{"a": 10_000}}},
	}

	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.input); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestForUserMembership(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	base := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	bills := []SplitBill{
		{ID: uuid.NewString(), BillName: "older", CreatedBy: "u1", Participants: []string{"u1", "u2"}, CreatedAt: base},
		{ID: uuid.NewString(), BillName: "newer", CreatedBy: "u2", Participants: []string{"u2", "u1"}, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.NewString(), BillName: "other", CreatedBy: "u3", Participants: []string{"u3"}, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, bill := range bills {
		if err := repo.Create(ctx, bill); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bills for u1, got %d", len(got))
	}
	if got[0].BillName != "newer" || got[1].BillName != "older" {
		t.Fatalf("expected newest first, got %s then %s", got[0].BillName, got[1].BillName)
	}
}

func TestCreateCopiesShares(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	shares := map[string]int64{"user-a": 10_000}

	bill, err := svc.Create(context.Background(), CreateInput{
		BillName:    "Kopi",
		TotalAmount: 10_000,
		Category:    "Food",
		Shares:      shares,
		CreatedBy:   "user-a",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	shares["user-a"] = 99_999
	if bill.Shares["user-a"] != 10_000 {
		t.Fatal("stored shares must not alias the caller's map")
	}
}
