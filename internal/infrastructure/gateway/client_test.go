package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/application/billing"
	"github.com/graficaerp/backend/internal/infrastructure/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.GatewayConfig{
		BaseURL:       baseURL,
		APIKey:        "sk_test_123",
		WebhookSecret: "whsec_test",
		Timeout:       2 * time.Second,
		RetryDelay:    10 * time.Millisecond,
		SuccessURL:    "https://app.example.com/billing/success",
		CancelURL:     "https://app.example.com/billing/cancel",
	}, zap.NewNop())
}

func TestClient_CreateCheckoutSession(t *testing.T) {
	t.Run("creates session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, checkoutSessionsPath, r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"cs_123","checkout_url":"https://pay.example.com/cs_123","customer_id":"cus_456"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		session, err := client.CreateCheckoutSession(context.Background(), billing.CreateCheckoutInput{
			TenantID:   uuid.New(),
			TenantName: "Gráfica Central",
			Email:      "dono@graficacentral.com.br",
			PlanCode:   "pro",
		})

		require.NoError(t, err)
		assert.Equal(t, "cs_123", session.SessionID)
		assert.Equal(t, "https://pay.example.com/cs_123", session.CheckoutURL)
		assert.Equal(t, "cus_456", session.CustomerID)
	})

	t.Run("retries once on server error", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"id":"cs_123","checkout_url":"https://pay.example.com/cs_123","customer_id":"cus_456"}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		session, err := client.CreateCheckoutSession(context.Background(), billing.CreateCheckoutInput{
			TenantID: uuid.New(),
			Email:    "dono@graficacentral.com.br",
			PlanCode: "pro",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, "cs_123", session.SessionID)
	})

	t.Run("does not retry on client error", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":{"code":"plan_not_found","message":"Unknown plan"}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.CreateCheckoutSession(context.Background(), billing.CreateCheckoutInput{
			TenantID: uuid.New(),
			Email:    "dono@graficacentral.com.br",
			PlanCode: "nope",
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Contains(t, err.Error(), "Unknown plan")
	})
}

func TestClient_VerifySignature(t *testing.T) {
	client := newTestClient("https://gateway.example.com")
	payload := []byte(`{"id":"evt_1","type":"invoice.paid"}`)

	sign := func(body []byte) string {
		mac := hmac.New(sha256.New, []byte("whsec_test"))
		mac.Write(body)
		return hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("accepts valid signature", func(t *testing.T) {
		assert.NoError(t, client.VerifySignature(payload, sign(payload)))
	})

	t.Run("accepts sha256 prefixed signature", func(t *testing.T) {
		assert.NoError(t, client.VerifySignature(payload, "sha256="+sign(payload)))
	})

	t.Run("rejects tampered payload", func(t *testing.T) {
		tampered := []byte(`{"id":"evt_1","type":"invoice.payment_failed"}`)
		assert.Error(t, client.VerifySignature(tampered, sign(payload)))
	})

	t.Run("rejects malformed signature", func(t *testing.T) {
		assert.Error(t, client.VerifySignature(payload, "not-hex"))
	})
}
