package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kasku-app/kasku/internal/identity"
)

type stubGateway struct {
	token string
	err   error
	calls int
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, _ string, _ int64, _ string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.token, nil
}

func seedUser(t *testing.T, repo identity.Repository, name string) identity.User {
	t.Helper()
	user := identity.User{ID: uuid.NewString(), Name: name, Email: name + "@kampus.ac.id", CreatedAt: time.Now().UTC()}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestCreateTransferOpensCheckout(t *testing.T) {
	ctx := context.Background()
	users := identity.NewMemoryRepository()
	repo := NewMemoryRepository()
	gw := &stubGateway{token: "snap-token"}
	svc := NewService(repo, users, gw)

	sender := seedUser(t, users, "budi")
	recipient := seedUser(t, users, "sari")

	res, err := svc.Create(ctx, CreateInput{SenderID: sender.ID, RecipientID: recipient.ID, Amount: 25_000, Note: "makan siang"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Token != "snap-token" {
		t.Fatalf("expected checkout token, got %q", res.Token)
	}
	if res.Transfer.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", res.Transfer.Status)
	}

	stored, err := repo.FindByOrderID(ctx, res.Transfer.OrderID)
	if err != nil {
		t.Fatalf("find by order id: %v", err)
	}
	if stored.Amount != 25_000 || stored.Note != "makan siang" {
		t.Fatalf("unexpected stored record: %+v", stored)
	}
}

func TestCreateTransferBelowMinimum(t *testing.T) {
	users := identity.NewMemoryRepository()
	svc := NewService(NewMemoryRepository(), users, &stubGateway{token: "snap-token"})

	sender := seedUser(t, users, "budi")
	recipient := seedUser(t, users, "sari")

	if _, err := svc.Create(context.Background(), CreateInput{SenderID: sender.ID, RecipientID: recipient.ID, Amount: 9_999}); err == nil {
		t.Fatal("expected minimum amount rejection")
	}
}

func TestCreateTransferToSelf(t *testing.T) {
	users := identity.NewMemoryRepository()
	svc := NewService(NewMemoryRepository(), users, &stubGateway{token: "snap-token"})
	sender := seedUser(t, users, "budi")

	if _, err := svc.Create(context.Background(), CreateInput{SenderID: sender.ID, RecipientID: sender.ID, Amount: 20_000}); err == nil {
		t.Fatal("expected self-transfer rejection")
	}
}

func TestCreateTransferGatewayFailureMarksFailed(t *testing.T) {
	ctx := context.Background()
	users := identity.NewMemoryRepository()
	repo := NewMemoryRepository()
	svc := NewService(repo, users, &stubGateway{err: errors.New("snap unavailable")})

	sender := seedUser(t, users, "budi")
	recipient := seedUser(t, users, "sari")

	_, err := svc.Create(ctx, CreateInput{SenderID: sender.ID, RecipientID: recipient.ID, Amount: 20_000})
	if !errors.Is(err, ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}

	records, err := repo.ForUser(ctx, sender.ID)
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(records) != 1 || records[0].Status != StatusFailed {
		t.Fatalf("expected one failed record, got %+v", records)
	}
}

func TestForUserFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	base := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	mk := func(sender, recipient string, at time.Time) Transfer {
		return Transfer{ID: uuid.NewString(), SenderID: sender, RecipientID: recipient, Amount: 15_000, Status: StatusSuccess, CreatedAt: at, UpdatedAt: at}
	}
	if err := repo.Create(ctx, mk("u1", "u2", base)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, mk("u3", "u1", base.Add(2*time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, mk("u2", "u3", base.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records for u1, got %d", len(got))
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Fatalf("expected newest first, got %+v", got)
	}

	// Same snapshot twice yields the same order.
	again, err := repo.ForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("for user again: %v", err)
	}
	for i := range got {
		if got[i].ID != again[i].ID {
			t.Fatalf("ordering not stable at %d: %s vs %s", i, got[i].ID, again[i].ID)
		}
	}
}

func TestUpdateStatusTransitionsOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	rec := Transfer{ID: uuid.NewString(), SenderID: "u1", RecipientID: "u2", Amount: 20_000, Status: StatusPending, CreatedAt: time.Now().UTC()}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}

	if err := repo.UpdateStatus(ctx, rec.ID, StatusSuccess); err != nil {
		t.Fatalf("first transition: %v", err)
	}
	if err := repo.UpdateStatus(ctx, rec.ID, StatusFailed); !errors.Is(err, ErrStatusFinal) {
		t.Fatalf("expected ErrStatusFinal, got %v", err)
	}
}

func TestCreateTransferOrderIDsUnique(t *testing.T) {
	ctx := context.Background()
	users := identity.NewMemoryRepository()
	repo := NewMemoryRepository()
	svc := NewService(repo, users, &stubGateway{token: "snap-token"})

	sender := seedUser(t, users, "budi")
	recipient := seedUser(t, users, "sari")

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		res, err := svc.Create(ctx, CreateInput{SenderID: sender.ID, RecipientID: recipient.ID, Amount: 25_000})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[res.Transfer.OrderID] {
			t.Fatalf("duplicate order id %q", res.Transfer.OrderID)
		}
		seen[res.Transfer.OrderID] = true
	}
}
