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

	"github.com/eventnexus/backend/internal/domain/order"
	"github.com/eventnexus/backend/internal/domain/shared"
)

// RazorpayAdapter implements the PaymentGateway port against the Razorpay
// Orders API. API calls authenticate with basic auth (key ID / key secret);
// webhook deliveries are verified with an HMAC-SHA256 over the exact raw
// body, keyed by the webhook secret.
type RazorpayAdapter struct {
	config     *RazorpayConfig
	httpClient *http.Client
}

// NewRazorpayAdapter creates a new Razorpay adapter
func NewRazorpayAdapter(config *RazorpayConfig) (*RazorpayAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &RazorpayAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// CreateOrder registers a payable order with the gateway
func (a *RazorpayAdapter) CreateOrder(ctx context.Context, req *order.CreateGatewayOrderRequest) (*order.CreateGatewayOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(razorpayCreateOrderRequest{
		Amount:   req.AmountCents,
		Currency: req.Currency,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to marshal request: %w", err)
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, "/orders", body)
	if err != nil {
		return nil, err
	}

	var created razorpayOrder
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("razorpay: failed to parse response: %w", err)
	}
	if created.ID == "" {
		return nil, shared.ErrUpstream
	}

	return &order.CreateGatewayOrderResponse{
		GatewayOrderID: created.ID,
		AmountCents:    created.Amount,
		Currency:       created.Currency,
		CreatedAt:      time.Unix(created.CreatedAt, 0),
	}, nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header value against
// the HMAC-SHA256 of the raw body. The comparison is constant time.
func (a *RazorpayAdapter) VerifyWebhookSignature(rawBody []byte, signature string) bool {
	return VerifySignature(rawBody, signature, a.config.WebhookSecret)
}

// VerifySignature computes the hex-encoded HMAC-SHA256 of body keyed by
// secret and compares it to signature in constant time.
func VerifySignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (a *RazorpayAdapter) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, a.config.Endpoint()+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(a.config.KeyID, a.config.KeySecret)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr razorpayErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error.Description != "" {
			return nil, shared.NewDomainErrorf("UPSTREAM_ERROR", "Razorpay: %s", apiErr.Error.Description)
		}
		return nil, shared.NewDomainErrorf("UPSTREAM_ERROR", "Razorpay returned status %d", resp.StatusCode)
	}

	return respBody, nil
}

// Ensure RazorpayAdapter implements PaymentGateway
var _ order.PaymentGateway = (*RazorpayAdapter)(nil)
