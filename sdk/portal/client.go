// Package portal is a Go client for the Client Desk ticket API.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is the ticket API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a client for baseURL (e.g. "https://desk.example.com")
// authenticating with the bearer token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTicket opens a ticket. The call returns once any automated reply is stored.
func (c *Client) CreateTicket(ctx context.Context, req CreateTicketRequest) (*CreateTicketResult, error) {
	var result CreateTicketResult
	if err := c.doRequest(ctx, http.MethodPost, "/tickets", req, &result); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return &result, nil
}

// ListTickets returns the tickets visible to the caller.
func (c *Client) ListTickets(ctx context.Context, opts ListTicketsOptions) (*TicketList, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Priority != "" {
		q.Set("priority", opts.Priority)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}

	path := "/tickets"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result TicketList
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return &result, nil
}

// FetchThread returns the ticket and its messages.
func (c *Client) FetchThread(ctx context.Context, ticketID uint) (*Thread, error) {
	var result Thread
	if err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/tickets/%d", ticketID), nil, &result); err != nil {
		return nil, fmt.Errorf("fetch thread: %w", err)
	}
	return &result, nil
}

// Reply adds a message to the ticket. Replying to a closed ticket fails with an
// error for which IsTicketClosed reports true.
func (c *Client) Reply(ctx context.Context, ticketID uint, req ReplyRequest) (*ReplyResult, error) {
	var result ReplyResult
	if err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/tickets/%d/messages", ticketID), req, &result); err != nil {
		return nil, fmt.Errorf("reply: %w", err)
	}
	return &result, nil
}

func (c *Client) Close(ctx context.Context, ticketID uint) (*CloseResult, error) {
	var result CloseResult
	if err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/tickets/%d/close", ticketID), nil, &result); err != nil {
		return nil, fmt.Errorf("close ticket: %w", err)
	}
	return &result, nil
}

func (c *Client) Reopen(ctx context.Context, ticketID uint) (*Ticket, error) {
	var result Ticket
	if err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("/tickets/%d/reopen", ticketID), nil, &result); err != nil {
		return nil, fmt.Errorf("reopen ticket: %w", err)
	}
	return &result, nil
}

// ListNotifications returns the caller's notifications, newest first.
func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool, page, pageSize int) (*NotificationList, error) {
	q := url.Values{}
	if unreadOnly {
		q.Set("unread", "true")
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	path := "/notifications"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result NotificationList
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return &result, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id uint) error {
	if err := c.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/notifications/%d/read", id), nil, nil); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request and decodes the data field of the envelope into result.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	decodeErr := json.Unmarshal(respBody, &apiResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		if decodeErr == nil && apiResp.Error != nil {
			apiErr.Type = apiResp.Error.Type
			apiErr.Message = apiResp.Error.Message
			apiErr.Details = apiResp.Error.Details
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("unmarshal response: %w", decodeErr)
	}
	if !apiResp.Success {
		return fmt.Errorf("api error: %s", apiResp.Message)
	}
	if result == nil || len(apiResp.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(apiResp.Data, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return nil
}
