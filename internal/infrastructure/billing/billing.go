// Package billing looks up invoice summaries from the external billing system.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

// ErrUnavailable is returned when no billing system is configured or the customer has no invoices.
var ErrUnavailable = errors.New("billing summary unavailable")

const maxBillingResponseSize = 64 << 10

// NoopClient is used when no billing system is configured.
type NoopClient struct{}

func (NoopClient) LatestInvoiceSummary(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// HTTPClient reads the latest invoice of a customer over a JSON API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, log logger.Interface) *HTTPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

type invoiceResponse struct {
	Number    string `json:"number"`
	Status    string `json:"status"`
	AmountDue int64  `json:"amount_due"`
	Currency  string `json:"currency"`
	DueDate   string `json:"due_date"`
}

// LatestInvoiceSummary returns a one-line description of the customer's latest invoice.
func (c *HTTPClient) LatestInvoiceSummary(ctx context.Context, customerID string) (string, error) {
	if customerID == "" {
		return "", ErrUnavailable
	}

	endpoint := fmt.Sprintf("%s/customers/%s/invoices/latest", c.baseURL, url.PathEscape(customerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch invoice: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrUnavailable
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var inv invoiceResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBillingResponseSize)).Decode(&inv); err != nil {
		return "", fmt.Errorf("failed to decode invoice: %w", err)
	}

	summary := fmt.Sprintf("Invoice %s: %s, %s %.2f due", inv.Number, inv.Status, strings.ToUpper(inv.Currency), float64(inv.AmountDue)/100)
	if inv.DueDate != "" {
		summary += " " + inv.DueDate
	}
	return summary, nil
}
