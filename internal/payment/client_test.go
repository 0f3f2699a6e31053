package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medikita/platform/internal/config"
)

func paymentClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(config.PaymentConfig{
		BaseURL:         srv.URL,
		APIKey:          "secret-key",
		InvoiceDuration: 24 * time.Hour,
		SuccessURL:      "http://localhost:8080/dashboard",
		FailureURL:      "http://localhost:8080/dashboard",
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresConfiguration(t *testing.T) {
	_, err := NewClient(config.PaymentConfig{})
	assert.Error(t, err)

	_, err = NewClient(config.PaymentConfig{BaseURL: "http://x"})
	assert.Error(t, err)
}

func TestCreateInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/invoices", r.URL.Path)

		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "secret-key", user)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "order-ref-1", payload["external_id"])
		assert.EqualValues(t, 150000, payload["amount"])
		assert.Equal(t, "buyer@example.com", payload["payer_email"])
		assert.EqualValues(t, 86400, payload["invoice_duration"])

		_, _ = w.Write([]byte(`{
			"id": "inv-1",
			"external_id": "order-ref-1",
			"status": "PENDING",
			"invoice_url": "https://checkout.example.com/inv-1",
			"amount": 150000
		}`))
	}))
	defer srv.Close()

	invoice, err := paymentClient(t, srv).CreateInvoice(context.Background(), CreateInvoiceInput{
		ExternalID:  "order-ref-1",
		Amount:      150000,
		PayerEmail:  "buyer@example.com",
		Description: "medikita order",
	})
	require.NoError(t, err)
	assert.Equal(t, "inv-1", invoice.ID)
	assert.Equal(t, InvoiceStatusPending, invoice.Status)
	assert.Equal(t, "https://checkout.example.com/inv-1", invoice.InvoiceURL)
}

func TestGetInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/invoices/inv-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"inv-1","external_id":"order-ref-1","status":"PAID","amount":150000}`))
	}))
	defer srv.Close()

	invoice, err := paymentClient(t, srv).GetInvoice(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, InvoiceStatusPaid, invoice.Status)
}

func TestProviderErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error_code":"UNAUTHORIZED"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := paymentClient(t, srv).GetInvoice(context.Background(), "inv-1")
	assert.Error(t, err)
}
