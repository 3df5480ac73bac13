package gateway

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
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/graficaerp/backend/internal/application/billing"
	"github.com/graficaerp/backend/internal/domain/shared"
	"github.com/graficaerp/backend/internal/infrastructure/config"
)

const checkoutSessionsPath = "/v1/checkout/sessions"

// Client talks to the subscription payment gateway over its REST API.
// Webhook signatures are HMAC-SHA256 over the raw request body, hex encoded.
type Client struct {
	baseURL       string
	apiKey        string
	webhookSecret []byte
	successURL    string
	cancelURL     string
	retryDelay    time.Duration
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewClient creates a gateway client from configuration
func NewClient(cfg *config.GatewayConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		webhookSecret: []byte(cfg.WebhookSecret),
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		retryDelay:    cfg.RetryDelay,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type checkoutSessionRequest struct {
	PlanCode      string `json:"plan_code"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	CustomerID    string `json:"customer_id,omitempty"`
	Reference     string `json:"reference"`
	SuccessURL    string `json:"success_url,omitempty"`
	CancelURL     string `json:"cancel_url,omitempty"`
}

type checkoutSessionResponse struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
	CustomerID  string `json:"customer_id"`
}

type gatewayErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession opens a hosted checkout session for a plan. Transport
// failures and 5xx responses are retried once after the configured delay.
func (c *Client) CreateCheckoutSession(ctx context.Context, input billing.CreateCheckoutInput) (*billing.CheckoutSession, error) {
	payload := checkoutSessionRequest{
		PlanCode:      input.PlanCode,
		CustomerEmail: input.Email,
		CustomerName:  input.TenantName,
		CustomerID:    input.GatewayCustomerID,
		Reference:     input.TenantID.String(),
		SuccessURL:    c.successURL,
		CancelURL:     c.cancelURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gateway: failed to marshal checkout request: %w", err)
	}

	respBody, err := c.doWithRetry(ctx, http.MethodPost, checkoutSessionsPath, body)
	if err != nil {
		return nil, err
	}

	var session checkoutSessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("gateway: failed to parse checkout response: %w", err)
	}
	if session.ID == "" || session.CheckoutURL == "" {
		return nil, fmt.Errorf("gateway: incomplete checkout response")
	}

	return &billing.CheckoutSession{
		SessionID:   session.ID,
		CheckoutURL: session.CheckoutURL,
		CustomerID:  session.CustomerID,
	}, nil
}

// VerifySignature checks the webhook signature against the raw payload. The
// comparison is constant time.
func (c *Client) VerifySignature(payload []byte, signature string) error {
	if len(c.webhookSecret) == 0 {
		return shared.NewDomainError("GATEWAY_MISCONFIGURED", "Webhook secret is not configured")
	}

	signature = strings.TrimPrefix(strings.TrimSpace(signature), "sha256=")
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return shared.NewDomainError("INVALID_SIGNATURE", "Webhook signature is not valid hex")
	}

	mac := hmac.New(sha256.New, c.webhookSecret)
	mac.Write(payload)
	if !hmac.Equal(mac.Sum(nil), expected) {
		return shared.NewDomainError("INVALID_SIGNATURE", "Webhook signature mismatch")
	}
	return nil
}

// doWithRetry performs the request and retries once on transport errors and
// 5xx responses. 4xx responses are not retried.
func (c *Client) doWithRetry(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	respBody, retryable, err := c.do(ctx, method, path, body)
	if err == nil || !retryable {
		return respBody, err
	}

	c.logger.Warn("gateway request failed, retrying",
		zap.String("path", path),
		zap.Error(err))

	select {
	case <-time.After(c.retryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	respBody, _, err = c.do(ctx, method, path, body)
	return respBody, err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("gateway: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("gateway: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("gateway: failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("gateway: server error HTTP %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		var gatewayErr gatewayErrorResponse
		if json.Unmarshal(respBody, &gatewayErr) == nil && gatewayErr.Error.Message != "" {
			return nil, false, fmt.Errorf("gateway: %s (%s)", gatewayErr.Error.Message, gatewayErr.Error.Code)
		}
		return nil, false, fmt.Errorf("gateway: request rejected with HTTP %d", resp.StatusCode)
	}

	return respBody, false, nil
}

var _ billing.Gateway = (*Client)(nil)
