package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Transaction outcomes derived from a gateway notification.
const (
	OutcomeSuccess = "success"
	OutcomePending = "pending"
	OutcomeFailed  = "failed"
	OutcomeUnknown = "unknown"
)

// Notification is the JSON payload the gateway posts on every transaction
// status change.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
}

// Verify checks the notification signature:
// sha512(order_id + status_code + gross_amount + serverKey).
func (n Notification) Verify(serverKey string) bool {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) == 1
}

// Outcome maps the gateway transaction status onto a settlement outcome.
func (n Notification) Outcome() string {
	switch n.TransactionStatus {
	case "capture", "settlement":
		if n.FraudStatus == "challenge" {
			return OutcomePending
		}
		return OutcomeSuccess
	case "pending":
		return OutcomePending
	case "deny", "cancel", "expire", "failure":
		return OutcomeFailed
	default:
		return OutcomeUnknown
	}
}
