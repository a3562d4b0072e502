package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventnexus/backend/internal/domain/order"
	"github.com/eventnexus/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *RazorpayConfig {
	return &RazorpayConfig{
		KeyID:         "rzp_test_key",
		KeySecret:     "rzp_test_secret",
		WebhookSecret: "whsec_test",
		BaseURL:       baseURL,
	}
}

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRazorpayConfigValidate(t *testing.T) {
	cfg := testConfig("")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, razorpayDefaultBaseURL, cfg.Endpoint())

	assert.ErrorIs(t, (&RazorpayConfig{KeySecret: "s", WebhookSecret: "w"}).Validate(), ErrRazorpayMissingKeyID)
	assert.ErrorIs(t, (&RazorpayConfig{KeyID: "k", WebhookSecret: "w"}).Validate(), ErrRazorpayMissingKeySecret)
	assert.ErrorIs(t, (&RazorpayConfig{KeyID: "k", KeySecret: "s"}).Validate(), ErrRazorpayMissingWebhookSecret)
}

func TestRazorpayCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("registers the order with basic auth", func(t *testing.T) {
		var gotReq razorpayCreateOrderRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "rzp_test_key", user)
			assert.Equal(t, "rzp_test_secret", pass)
			assert.Equal(t, "/orders", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			json.NewEncoder(w).Encode(razorpayOrder{
				ID:        "order_abc123",
				Amount:    gotReq.Amount,
				Currency:  gotReq.Currency,
				Status:    "created",
				CreatedAt: 1735689600,
			})
		}))
		defer srv.Close()

		adapter, err := NewRazorpayAdapter(testConfig(srv.URL))
		require.NoError(t, err)

		resp, err := adapter.CreateOrder(ctx, &order.CreateGatewayOrderRequest{
			AmountCents: 149850,
			Currency:    "INR",
			Notes:       map[string]string{"buyer_id": "user_1"},
		})
		require.NoError(t, err)
		assert.Equal(t, "order_abc123", resp.GatewayOrderID)
		assert.Equal(t, int64(149850), resp.AmountCents)
		assert.Equal(t, "INR", resp.Currency)
		assert.Equal(t, int64(149850), gotReq.Amount)
		assert.Equal(t, "user_1", gotReq.Notes["buyer_id"])
	})

	t.Run("api error envelope surfaces as upstream failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Amount exceeds maximum"}}`))
		}))
		defer srv.Close()

		adapter, err := NewRazorpayAdapter(testConfig(srv.URL))
		require.NoError(t, err)

		_, err = adapter.CreateOrder(ctx, &order.CreateGatewayOrderRequest{AmountCents: 100, Currency: "INR"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Amount exceeds maximum")
	})

	t.Run("non-json error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream timeout"))
		}))
		defer srv.Close()

		adapter, err := NewRazorpayAdapter(testConfig(srv.URL))
		require.NoError(t, err)

		_, err = adapter.CreateOrder(ctx, &order.CreateGatewayOrderRequest{AmountCents: 100, Currency: "INR"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Contains(t, domainErr.Message, "502")
	})

	t.Run("invalid request never leaves the process", func(t *testing.T) {
		adapter, err := NewRazorpayAdapter(testConfig("http://127.0.0.1:1"))
		require.NoError(t, err)

		_, err = adapter.CreateOrder(ctx, &order.CreateGatewayOrderRequest{AmountCents: 0, Currency: "INR"})
		require.Error(t, err)
	})
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"order.paid"}`)
	secret := "whsec_test"

	assert.True(t, VerifySignature(body, sign(body, secret), secret))
	assert.False(t, VerifySignature(body, sign(body, "other_secret"), secret))
	assert.False(t, VerifySignature([]byte(`{"event":"tampered"}`), sign(body, secret), secret))
	assert.False(t, VerifySignature(body, "", secret))
	assert.False(t, VerifySignature(body, sign(body, secret), ""))
}

func TestRazorpayWebhookEventAccessors(t *testing.T) {
	t.Run("payment events carry the order handle on the payment entity", func(t *testing.T) {
		raw := []byte(`{
			"event": "payment.failed",
			"payload": {
				"payment": {"entity": {"id": "pay_1", "order_id": "order_1", "status": "failed"}}
			}
		}`)
		var evt RazorpayWebhookEvent
		require.NoError(t, json.Unmarshal(raw, &evt))
		assert.Equal(t, WebhookEventPaymentFailed, evt.Event)
		assert.Equal(t, "order_1", evt.GatewayOrderID())
		assert.Equal(t, "pay_1", evt.PaymentID())
	})

	t.Run("order entity wins when both are present", func(t *testing.T) {
		raw := []byte(`{
			"event": "order.paid",
			"payload": {
				"order": {"entity": {"id": "order_2", "amount": 149850, "status": "paid"}},
				"payment": {"entity": {"id": "pay_2", "order_id": "order_2", "status": "captured"}}
			}
		}`)
		var evt RazorpayWebhookEvent
		require.NoError(t, json.Unmarshal(raw, &evt))
		assert.Equal(t, "order_2", evt.GatewayOrderID())
		assert.Equal(t, "pay_2", evt.PaymentID())
	})

	t.Run("empty payload", func(t *testing.T) {
		var evt RazorpayWebhookEvent
		require.NoError(t, json.Unmarshal([]byte(`{"event":"ping"}`), &evt))
		assert.Empty(t, evt.GatewayOrderID())
		assert.Empty(t, evt.PaymentID())
	})
}
