package identity

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	ctx := context.Background()
	user, err := svc.Register(ctx, Credentials{Name: "Budi", Email: "budi@kampus.ac.id", Password: "rahasia1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Balance != 0 {
		t.Fatalf("expected zero opening balance, got %d", user.Balance)
	}
	if len(user.AccountNumber) != 10 {
		t.Fatalf("expected 10 digit account number, got %q", user.AccountNumber)
	}

	authed, err := svc.Authenticate(ctx, Credentials{Email: "budi@kampus.ac.id", Password: "rahasia1"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, authed.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, Credentials{Name: "Budi", Email: "budi@kampus.ac.id", Password: "rahasia1"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(ctx, Credentials{Name: "Budi Dua", Email: "budi@kampus.ac.id", Password: "rahasia2"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, Credentials{Name: "Sari", Email: "sari@kampus.ac.id", Password: "rahasia1"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, Credentials{Email: "sari@kampus.ac.id", Password: "salah"}); err == nil {
		t.Fatal("expected authentication failure")
	}
}

func TestAdjustBalanceGuardsNegative(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, Credentials{Name: "Sari", Email: "sari@kampus.ac.id", Password: "rahasia1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := repo.AdjustBalance(ctx, user.ID, 50_000); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if _, err := repo.AdjustBalance(ctx, user.ID, -60_000); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	balance, err := repo.AdjustBalance(ctx, user.ID, -20_000)
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if balance != 30_000 {
		t.Fatalf("expected balance 30000, got %d", balance)
	}
}

func TestGetUser(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, Credentials{Name: "Budi", Email: "budi@kampus.ac.id", Password: "rahasia1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != user.Email || got.AccountNumber != user.AccountNumber {
		t.Fatalf("unexpected user %+v", got)
	}

	if _, err := svc.Get(ctx, "no-such-user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
