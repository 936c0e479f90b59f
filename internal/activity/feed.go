package activity

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/kasku-app/kasku/internal/splitbill"
	"github.com/kasku-app/kasku/internal/topup"
	"github.com/kasku-app/kasku/internal/transfer"
)

// TransferSource yields the transfers relevant to one user.
type TransferSource interface {
	ForUser(ctx context.Context, userID string) ([]transfer.Transfer, error)
}

// SplitSource yields the split bills relevant to one user.
type SplitSource interface {
	ForUser(ctx context.Context, userID string) ([]splitbill.SplitBill, error)
}

// TopUpSource yields the top-ups relevant to one user.
type TopUpSource interface {
	ForUser(ctx context.Context, userID string) ([]topup.TopUp, error)
}

// Feed merges the three record streams into one chronologically descending
// activity feed. It reads snapshots only and never writes.
type Feed struct {
	transfers TransferSource
	splits    SplitSource
	topups    TopUpSource
	logger    *slog.Logger
}

// NewFeed builds an activity feed over the three sources.
func NewFeed(transfers TransferSource, splits SplitSource, topups TopUpSource, logger *slog.Logger) *Feed {
	return &Feed{transfers: transfers, splits: splits, topups: topups, logger: logger}
}

// Recent returns the user's merged activity, newest first. limit > 0 truncates
// after the global sort so ordering is correct before items are dropped;
// limit <= 0 returns everything.
//
// The three source fetches run concurrently and are joined before merging. A
// failed source degrades to an empty stream rather than failing the feed; the
// failure is logged, never surfaced.
func (f *Feed) Recent(ctx context.Context, userID string, limit int) ([]Item, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	var (
		wg        sync.WaitGroup
		transfers []transfer.Transfer
		splits    []splitbill.SplitBill
		topups    []topup.TopUp
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if transfers, err = f.transfers.ForUser(ctx, userID); err != nil {
			f.warnSource(KindTransfer, err)
			transfers = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if splits, err = f.splits.ForUser(ctx, userID); err != nil {
			f.warnSource(KindSplit, err)
			splits = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if topups, err = f.topups.ForUser(ctx, userID); err != nil {
			f.warnSource(KindTopUp, err)
			topups = nil
		}
	}()
	wg.Wait()

	// Concatenation order (transfers, splits, topups) is the tie-break for
	// equal timestamps: the sort below is stable and has no secondary key.
	items := make([]Item, 0, len(transfers)+len(splits)+len(topups))
	for _, t := range transfers {
		item, ok := normalizeTransfer(t, userID)
		if !ok {
			f.warnMissingTime(KindTransfer, t.ID)
		}
		items = append(items, item)
	}
	for _, b := range splits {
		item, ok := normalizeSplit(b)
		if !ok {
			f.warnMissingTime(KindSplit, b.ID)
		}
		items = append(items, item)
	}
	for _, t := range topups {
		item, ok := normalizeTopUp(t)
		if !ok {
			f.warnMissingTime(KindTopUp, t.ID)
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *Feed) warnSource(kind Kind, err error) {
	if f.logger != nil {
		f.logger.Warn("activity source unavailable", "kind", string(kind), "error", err)
	}
}

func (f *Feed) warnMissingTime(kind Kind, id string) {
	if f.logger != nil {
		f.logger.Warn("record without creation time", "kind", string(kind), "id", id)
	}
}
