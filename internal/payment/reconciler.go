package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kasku-app/kasku/internal/identity"
	"github.com/kasku-app/kasku/internal/notification"
	"github.com/kasku-app/kasku/internal/topup"
	"github.com/kasku-app/kasku/internal/transfer"
)

// topupOrderPrefix distinguishes top-up orders from transfer orders in
// notification routing.
const topupOrderPrefix = "TOPUP-"

var (
	// ErrBadSignature indicates the notification signature did not match.
	ErrBadSignature = errors.New("invalid notification signature")

	// ErrUnknownOrder indicates no pending record matches the order id.
	ErrUnknownOrder = errors.New("unknown order id")
)

// Reconciler applies gateway notifications to the owning records: it settles
// the status transition and credits the affected balance. This closes the loop
// the checkout flow leaves open.
type Reconciler struct {
	transfers transfer.Repository
	topups    topup.Repository
	users     identity.Repository
	notifier  notification.Notifier
	serverKey string
	logger    *slog.Logger
}

// NewReconciler builds a reconciler over the settlement repositories.
func NewReconciler(transfers transfer.Repository, topups topup.Repository, users identity.Repository, notifier notification.Notifier, serverKey string, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		transfers: transfers,
		topups:    topups,
		users:     users,
		notifier:  notifier,
		serverKey: serverKey,
		logger:    logger,
	}
}

// Apply validates and settles one notification. Replays of an already settled
// order are treated as idempotent no-ops. Pending notifications are logged and
// leave the record untouched.
func (r *Reconciler) Apply(ctx context.Context, n Notification) error {
	if !n.Verify(r.serverKey) {
		return ErrBadSignature
	}

	outcome := n.Outcome()
	switch outcome {
	case OutcomePending:
		r.logger.Info("notification still pending", "order_id", n.OrderID, "transaction_status", n.TransactionStatus)
		return nil
	case OutcomeUnknown:
		r.logger.Warn("unrecognised transaction status", "order_id", n.OrderID, "transaction_status", n.TransactionStatus)
		return nil
	}

	if strings.HasPrefix(n.OrderID, topupOrderPrefix) {
		return r.settleTopUp(ctx, n.OrderID, outcome)
	}
	return r.settleTransfer(ctx, n.OrderID, outcome)
}

func (r *Reconciler) settleTopUp(ctx context.Context, orderID, outcome string) error {
	rec, err := r.topups.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, topup.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
		}
		return err
	}

	status := topup.StatusSuccess
	if outcome == OutcomeFailed {
		status = topup.StatusFailed
	}
	if err := r.topups.UpdateStatus(ctx, rec.ID, status); err != nil {
		if errors.Is(err, topup.ErrStatusFinal) {
			r.logger.Info("top-up already settled", "order_id", orderID)
			return nil
		}
		return err
	}
	if outcome != OutcomeSuccess {
		r.logger.Info("top-up failed", "order_id", orderID)
		return nil
	}

	balance, err := r.users.AdjustBalance(ctx, rec.UserID, rec.Amount)
	if err != nil {
		return fmt.Errorf("credit top-up %s: %w", orderID, err)
	}
	r.logger.Info("top-up settled", "order_id", orderID, "user_id", rec.UserID, "balance", balance)

	if r.notifier != nil {
		_ = r.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTopUpSettled,
			Destination: rec.UserID,
			Body:        fmt.Sprintf("Top up of %d succeeded", rec.Amount),
		})
	}
	return nil
}

func (r *Reconciler) settleTransfer(ctx context.Context, orderID, outcome string) error {
	rec, err := r.transfers.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, transfer.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
		}
		return err
	}

	status := transfer.StatusSuccess
	if outcome == OutcomeFailed {
		status = transfer.StatusFailed
	}
	if err := r.transfers.UpdateStatus(ctx, rec.ID, status); err != nil {
		if errors.Is(err, transfer.ErrStatusFinal) {
			r.logger.Info("transfer already settled", "order_id", orderID)
			return nil
		}
		return err
	}
	if outcome != OutcomeSuccess {
		r.logger.Info("transfer failed", "order_id", orderID)
		return nil
	}

	// The sender funded the transfer through the checkout, so settlement only
	// credits the recipient.
	balance, err := r.users.AdjustBalance(ctx, rec.RecipientID, rec.Amount)
	if err != nil {
		return fmt.Errorf("credit transfer %s: %w", orderID, err)
	}
	r.logger.Info("transfer settled", "order_id", orderID, "recipient_id", rec.RecipientID, "balance", balance)

	if r.notifier != nil {
		_ = r.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferSettled,
			Destination: rec.RecipientID,
			Body:        fmt.Sprintf("You received %d from %s", rec.Amount, rec.SenderID),
		})
	}
	return nil
}
