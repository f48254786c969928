package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pawsit/pawsit-server/internal/domains/payments/ports"
)

var _ ports.Gateway = (*Client)(nil)

// Client talks to the external payment gateway over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the gateway client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("gateway base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}, nil
}

type chargeRequestBody struct {
	PaymentID int64   `json:"paymentId"`
	BookingID int64   `json:"bookingId"`
	Amount    float64 `json:"amount"`
}

type chargeResponseBody struct {
	TransactionRef string `json:"transactionRef"`
	Message        string `json:"message"`
}

type refundRequestBody struct {
	TransactionRef string  `json:"transactionRef"`
	Amount         float64 `json:"amount"`
}

// Charge captures a payment against the gateway. A payment-required response
// surfaces as ports.ErrChargeDeclined.
func (c *Client) Charge(ctx context.Context, req ports.ChargeRequest) (*ports.ChargeResult, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("gateway client not configured")
	}
	var body chargeResponseBody
	status, err := c.post(ctx, "/charges", chargeRequestBody{
		PaymentID: req.PaymentID,
		BookingID: req.BookingID,
		Amount:    req.Amount,
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("call payment gateway: %w", err)
	}
	switch {
	case status == http.StatusOK || status == http.StatusCreated:
		if strings.TrimSpace(body.TransactionRef) == "" {
			return nil, errors.New("payment gateway returned an empty transaction ref")
		}
		return &ports.ChargeResult{TransactionRef: body.TransactionRef}, nil
	case status == http.StatusPaymentRequired || status == http.StatusUnprocessableEntity:
		return nil, ports.ErrChargeDeclined
	default:
		return nil, fmt.Errorf("payment gateway error: %s", gatewayMessage(body.Message, status))
	}
}

// Refund returns a captured charge.
func (c *Client) Refund(ctx context.Context, transactionRef string, amount float64) error {
	if c == nil || c.httpClient == nil {
		return errors.New("gateway client not configured")
	}
	if strings.TrimSpace(transactionRef) == "" {
		return errors.New("transaction ref is required")
	}
	var body chargeResponseBody
	status, err := c.post(ctx, "/refunds", refundRequestBody{
		TransactionRef: transactionRef,
		Amount:         amount,
	}, &body)
	if err != nil {
		return fmt.Errorf("call payment gateway: %w", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("payment gateway refund error: %s", gatewayMessage(body.Message, status))
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) (int, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && len(raw) > 0 {
		// Bodies on error statuses are best effort.
		_ = json.Unmarshal(raw, out)
	}
	return resp.StatusCode, nil
}

func gatewayMessage(message string, status int) string {
	if msg := strings.TrimSpace(message); msg != "" {
		return msg
	}
	return http.StatusText(status)
}
