package topup

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.RWMutex
	records map[string]TopUp
	order   []string
}

// NewMemoryRepository builds an in-memory top-up store for testing and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{records: make(map[string]TopUp)}
}

func (r *memoryRepository) Create(_ context.Context, t TopUp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *memoryRepository) ForUser(_ context.Context, userID string) ([]TopUp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []TopUp
	for _, id := range r.order {
		t := r.records[id]
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) FindByOrderID(_ context.Context, orderID string) (TopUp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.records {
		if t.OrderID == orderID {
			return t, nil
		}
	}
	return TopUp{}, ErrNotFound
}

func (r *memoryRepository) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.records[id]
	if !ok {
		return ErrNotFound
	}
	if t.Status != StatusPending {
		return ErrStatusFinal
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	r.records[id] = t
	return nil
}
