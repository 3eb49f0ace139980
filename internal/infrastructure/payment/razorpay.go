// Package payment integrates the Razorpay gateway: order creation over its
// REST API and webhook/checkout signature verification.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"melodia/internal/shared/config"
	"melodia/internal/shared/logger"
)

const (
	razorpayBaseURL = "https://api.razorpay.com/v1"
	requestTimeout  = 15 * time.Second
)

// Order is a created Razorpay order.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway creates orders and verifies payment signatures.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// RazorpayGateway implements Gateway against the Razorpay REST API.
type RazorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

func NewRazorpayGateway(cfg *config.PaymentConfig, logger logger.Interface) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:      cfg.RazorpayKeyID,
		keySecret:  cfg.RazorpayKeySecret,
		baseURL:    razorpayBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// CreateOrder creates a gateway order. Amount is in the currency's smallest
// unit (paise for INR).
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	body, err := json.Marshal(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Errorw("razorpay order request failed", "error", err)
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.Errorw("razorpay order creation rejected",
			"status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("razorpay order creation failed with status %d", resp.StatusCode)
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("failed to decode razorpay order: %w", err)
	}

	g.logger.Infow("razorpay order created", "order_id", order.ID, "amount", order.Amount)
	return &order, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256 of "orderID|paymentID" keyed with the API secret, hex encoded,
// compared in constant time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
