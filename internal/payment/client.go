package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/medikita/platform/internal/config"
)

// Invoice statuses reported by the provider.
const (
	InvoiceStatusPending = "PENDING"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusExpired = "EXPIRED"
)

// Invoice is the provider's view of a payment request.
type Invoice struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
	InvoiceURL string `json:"invoice_url"`
	Amount     int64  `json:"amount"`
}

// CreateInvoiceInput describes a new invoice request.
type CreateInvoiceInput struct {
	ExternalID  string
	Amount      int64
	PayerEmail  string
	Description string
}

// Client is a thin wrapper over the hosted invoice provider. Immutable after
// construction; invoice status is pulled, never pushed (webhooks are handled
// outside this service).
type Client struct {
	cfg  config.PaymentConfig
	http *http.Client
}

// NewClient builds the payment client.
func NewClient(cfg config.PaymentConfig) (*Client, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil, errors.New("payment provider not configured")
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

// CreateInvoice registers a new invoice and returns its checkout URL.
func (c *Client) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*Invoice, error) {
	payload, err := json.Marshal(map[string]any{
		"external_id":          input.ExternalID,
		"amount":               input.Amount,
		"payer_email":          input.PayerEmail,
		"description":          input.Description,
		"invoice_duration":     int(c.cfg.InvoiceDuration.Seconds()),
		"success_redirect_url": c.cfg.SuccessURL,
		"failure_redirect_url": c.cfg.FailureURL,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal invoice request: %w", err)
	}

	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/v2/invoices"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build invoice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.APIKey, "")

	return c.do(req)
}

// GetInvoice pulls the current state of an invoice.
func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/v2/invoices/" + url.PathEscape(invoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build invoice lookup: %w", err)
	}
	req.SetBasicAuth(c.cfg.APIKey, "")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Invoice, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoice request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read invoice response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invoice request failed with status %d", resp.StatusCode)
	}

	var invoice Invoice
	if err := json.Unmarshal(body, &invoice); err != nil {
		return nil, fmt.Errorf("parse invoice response: %w", err)
	}
	if invoice.ID == "" {
		return nil, errors.New("empty invoice id in response")
	}
	return &invoice, nil
}
