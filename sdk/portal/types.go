package portal

import (
	"encoding/json"
	"time"
)

// Ticket statuses as reported by the API.
const (
	StatusOpen          = "open"
	StatusWaitingClient = "waiting_client"
	StatusEscalated     = "escalated"
	StatusAITriage      = "ai_triage"
	StatusClosed        = "closed"
)

// Sender kinds. Automated replies and system notices use SenderSystem.
const (
	SenderHuman  = "human"
	SenderSystem = "system"
)

// Ticket represents a support ticket.
type Ticket struct {
	ID             uint       `json:"id"`
	OwnerID        uint       `json:"owner_id"`
	ProjectID      *uint      `json:"project_id"`
	Subject        string     `json:"subject"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	Billable       bool       `json:"billable"`
	SentimentScore int        `json:"sentiment_score"`
	SnoozeUntil    *time.Time `json:"snooze_until"`
	Source         string     `json:"source"`
	CreatedBy      uint       `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ClosedAt       *time.Time `json:"closed_at"`
}

// Message represents one entry of a ticket thread.
type Message struct {
	ID            uint      `json:"id"`
	TicketID      uint      `json:"ticket_id"`
	SenderKind    string    `json:"sender_kind"`
	SenderID      *uint     `json:"sender_id"`
	Body          string    `json:"body"`
	IsInternal    bool      `json:"is_internal"`
	AttachmentRef string    `json:"attachment_ref,omitempty"`
	RevealDelayMs int64     `json:"reveal_delay_ms"`
	Kind          string    `json:"kind,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsSystem reports whether the message was written by the service rather than a person.
func (m Message) IsSystem() bool {
	return m.SenderKind == SenderSystem
}

// RevealDelay is the pause a client should take before showing the message.
func (m Message) RevealDelay() time.Duration {
	return time.Duration(m.RevealDelayMs) * time.Millisecond
}

// Thread is a ticket with its visible messages in chronological order.
type Thread struct {
	Ticket   *Ticket   `json:"ticket"`
	Messages []Message `json:"messages"`
}

// CreateTicketRequest opens a ticket. OwnerID is only honoured for staff callers.
type CreateTicketRequest struct {
	OwnerID       uint   `json:"owner_id,omitempty"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	Priority      string `json:"priority,omitempty"`
	AttachmentRef string `json:"attachment_ref,omitempty"`
}

type CreateTicketResult struct {
	Ticket  *Ticket  `json:"ticket"`
	Message *Message `json:"message"`
}

type ReplyRequest struct {
	Body          string `json:"body"`
	IsInternal    bool   `json:"is_internal,omitempty"`
	AttachmentRef string `json:"attachment_ref,omitempty"`
}

// ReplyResult carries the stored message and the ticket status after the reply.
type ReplyResult struct {
	Message       *Message `json:"message"`
	Status        string   `json:"status"`
	StatusChanged bool     `json:"status_changed"`
}

type CloseResult struct {
	Ticket *Ticket  `json:"ticket"`
	Notice *Message `json:"notice"`
}

// ListTicketsOptions filters ticket listings. Zero values are omitted.
type ListTicketsOptions struct {
	Status   string
	Priority string
	Page     int
	PageSize int
}

type TicketList struct {
	Items      []Ticket `json:"items"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

type Notification struct {
	ID         uint       `json:"id"`
	Message    string     `json:"message"`
	TargetType string     `json:"target_type"`
	TargetID   uint       `json:"target_id"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

type NotificationList struct {
	Items      []Notification `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// apiResponse is the envelope every endpoint responds with.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorInfo      `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

type errorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
