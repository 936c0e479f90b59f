package topup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kasku-app/kasku/internal/identity"
)

// MinAmount is the smallest top-up amount in minor units (Rp 10.000).
const MinAmount = 10_000

// ErrGateway indicates the checkout session could not be created.
var ErrGateway = errors.New("payment gateway failure")

// Gateway creates hosted-checkout sessions for pending top-ups.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, orderID string, grossAmount int64, customerLabel string) (string, error)
}

// Service coordinates top-up creation against the user store and the payment gateway.
type Service struct {
	repo    Repository
	users   identity.Repository
	gateway Gateway
}

// NewService builds a top-up service.
func NewService(repo Repository, users identity.Repository, gateway Gateway) *Service {
	return &Service{repo: repo, users: users, gateway: gateway}
}

// CreateInput captures the data needed to initiate a top-up.
type CreateInput struct {
	UserID string
	Amount int64
	Method string
}

// CreateResult bundles the pending record with the checkout token.
type CreateResult struct {
	TopUp TopUp
	Token string
}

// Create validates the request, persists a pending top-up and opens a checkout
// session for it. The balance is credited only when the webhook settles the
// record.
func (s *Service) Create(ctx context.Context, input CreateInput) (CreateResult, error) {
	if input.Amount < MinAmount {
		return CreateResult{}, fmt.Errorf("minimum top-up is %d", MinAmount)
	}
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return CreateResult{}, err
	}

	now := time.Now().UTC()
	t := TopUp{
		ID:        uuid.New().String(),
		OrderID:   fmt.Sprintf("TOPUP-%d-%s", now.UnixMilli(), uuid.New().String()[:8]),
		UserID:    input.UserID,
		Amount:    input.Amount,
		Method:    input.Method,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return CreateResult{}, err
	}

	token, err := s.gateway.CreateCheckoutSession(ctx, t.OrderID, t.Amount, user.Name)
	if err != nil {
		if uerr := s.repo.UpdateStatus(ctx, t.ID, StatusFailed); uerr != nil {
			return CreateResult{}, errors.Join(err, uerr)
		}
		return CreateResult{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return CreateResult{TopUp: t, Token: token}, nil
}

// History returns the user's top-ups, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]TopUp, error) {
	return s.repo.ForUser(ctx, userID)
}
