package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SnapClient creates hosted-checkout sessions against the Midtrans Snap API.
// The caller hands the returned token to the client-side checkout widget; the
// transaction outcome arrives later on the notification webhook.
type SnapClient struct {
	baseURL   string
	serverKey string
	client    *http.Client
}

// NewSnapClient builds a Snap API client.
func NewSnapClient(baseURL, serverKey string) *SnapClient {
	return &SnapClient{
		baseURL:   baseURL,
		serverKey: serverKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type snapRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	CustomerDetails struct {
		FirstName string `json:"first_name"`
	} `json:"customer_details"`
}

type snapResponse struct {
	Token         string   `json:"token"`
	ErrorMessages []string `json:"error_messages"`
}

// CreateCheckoutSession opens a checkout session and returns its token.
func (s *SnapClient) CreateCheckoutSession(ctx context.Context, orderID string, grossAmount int64, customerLabel string) (string, error) {
	var payload snapRequest
	payload.TransactionDetails.OrderID = orderID
	payload.TransactionDetails.GrossAmount = grossAmount
	payload.CustomerDetails.FirstName = customerLabel

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.serverKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("snap request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read snap response: %w", err)
	}

	var decoded snapResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decode snap response: %w", err)
	}
	if resp.StatusCode >= 300 || decoded.Token == "" {
		if len(decoded.ErrorMessages) > 0 {
			return "", fmt.Errorf("snap rejected transaction: %s", decoded.ErrorMessages[0])
		}
		return "", fmt.Errorf("snap returned status %d", resp.StatusCode)
	}
	return decoded.Token, nil
}

// StaticGateway simulates a successful checkout session, for development and tests.
type StaticGateway struct{}

// CreateCheckoutSession approves the request with a synthetic token.
func (StaticGateway) CreateCheckoutSession(_ context.Context, _ string, _ int64, _ string) (string, error) {
	return "snap-" + uuid.NewString(), nil
}
