package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kasku-app/kasku/internal/identity"
)

// MinAmount is the smallest transferable amount in minor units (Rp 10.000).
const MinAmount = 10_000

// ErrGateway indicates the checkout session could not be created.
var ErrGateway = errors.New("payment gateway failure")

// Gateway creates hosted-checkout sessions for pending transfers.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, orderID string, grossAmount int64, customerLabel string) (string, error)
}

// Service coordinates transfer creation against the user store and the payment gateway.
type Service struct {
	repo    Repository
	users   identity.Repository
	gateway Gateway
}

// NewService builds a transfer service.
func NewService(repo Repository, users identity.Repository, gateway Gateway) *Service {
	return &Service{repo: repo, users: users, gateway: gateway}
}

// CreateInput captures the data needed to initiate a transfer.
type CreateInput struct {
	SenderID    string
	RecipientID string
	Amount      int64
	Note        string
}

// CreateResult bundles the pending record with the checkout token the client
// hands to the payment widget.
type CreateResult struct {
	Transfer Transfer
	Token    string
}

// Create validates the request, persists a pending transfer and opens a
// checkout session for it. The record settles later via the gateway webhook.
func (s *Service) Create(ctx context.Context, input CreateInput) (CreateResult, error) {
	if input.Amount < MinAmount {
		return CreateResult{}, fmt.Errorf("minimum transfer is %d", MinAmount)
	}
	if input.SenderID == input.RecipientID {
		return CreateResult{}, errors.New("cannot transfer to yourself")
	}
	if _, err := s.users.FindByID(ctx, input.SenderID); err != nil {
		return CreateResult{}, err
	}
	recipient, err := s.users.FindByID(ctx, input.RecipientID)
	if err != nil {
		return CreateResult{}, err
	}

	now := time.Now().UTC()
	t := Transfer{
		ID:          uuid.New().String(),
		OrderID:     fmt.Sprintf("order-%d-%s", now.UnixMilli(), uuid.New().String()[:8]),
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		Amount:      input.Amount,
		Note:        input.Note,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return CreateResult{}, err
	}

	token, err := s.gateway.CreateCheckoutSession(ctx, t.OrderID, t.Amount, recipient.Name)
	if err != nil {
		// The session never opened, so nothing can settle this record.
		if uerr := s.repo.UpdateStatus(ctx, t.ID, StatusFailed); uerr != nil {
			return CreateResult{}, errors.Join(err, uerr)
		}
		return CreateResult{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return CreateResult{Transfer: t, Token: token}, nil
}

// History returns the transfers involving the user, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]Transfer, error) {
	return s.repo.ForUser(ctx, userID)
}
