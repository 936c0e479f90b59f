package splitbill

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service validates and persists split bills.
type Service struct {
	repo Repository
}

// NewService builds a split bill service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures the data needed to create a split bill. Participants are
// not supplied independently; they are derived from the share keys so the two
// can never diverge.
type CreateInput struct {
	BillName    string
	TotalAmount int64
	Category    string
	Shares      map[string]int64
	CreatedBy   string
}

// Create validates the share allocation and persists the bill with a
// server-assigned id and creation timestamp.
func (s *Service) Create(ctx context.Context, input CreateInput) (SplitBill, error) {
	if strings.TrimSpace(input.BillName) == "" {
		return SplitBill{}, errors.New("bill name is required")
	}
	if input.TotalAmount <= 0 {
		return SplitBill{}, fmt.Errorf("total amount must be positive")
	}
	if input.CreatedBy == "" {
		return SplitBill{}, errors.New("creator is required")
	}
	if err := validateShares(input.Shares, input.TotalAmount); err != nil {
		return SplitBill{}, err
	}

	participants := make([]string, 0, len(input.Shares))
	for userID := range input.Shares {
		participants = append(participants, userID)
	}
	sort.Strings(participants)

	shares := make(map[string]int64, len(input.Shares))
	for userID, share := range input.Shares {
		shares[userID] = share
	}

	bill := SplitBill{
		ID:           uuid.New().String(),
		BillName:     strings.TrimSpace(input.BillName),
		TotalAmount:  input.TotalAmount,
		Category:     input.Category,
		CreatedBy:    input.CreatedBy,
		Participants: participants,
		Shares:       shares,
		Status:       StatusSuccess,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, bill); err != nil {
		return SplitBill{}, err
	}

	return bill, nil
}

// ForUser returns bills the user created or participates in, newest first.
func (s *Service) ForUser(ctx context.Context, userID string) ([]SplitBill, error) {
	return s.repo.ForUser(ctx, userID)
}
