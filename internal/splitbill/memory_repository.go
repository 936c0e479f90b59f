package splitbill

import (
	"context"
	"slices"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	records map[string]SplitBill
	order   []string
}

// NewMemoryRepository builds an in-memory split bill store for testing and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{records: make(map[string]SplitBill)}
}

func (r *memoryRepository) Create(_ context.Context, bill SplitBill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[bill.ID] = bill
	r.order = append(r.order, bill.ID)
	return nil
}

func (r *memoryRepository) ForUser(_ context.Context, userID string) ([]SplitBill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []SplitBill
	for _, id := range r.order {
		bill := r.records[id]
		if bill.CreatedBy == userID || slices.Contains(bill.Participants, userID) {
			out = append(out, bill)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
