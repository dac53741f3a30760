package dto

import (
	"time"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
)

type TicketDTO struct {
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

// MessageDTO carries SenderID nil for messages written by the system.
type MessageDTO struct {
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

type ThreadDTO struct {
	Ticket   *TicketDTO    `json:"ticket"`
	Messages []*MessageDTO `json:"messages"`
}

type TicketListDTO struct {
	Items    []*TicketDTO `json:"items"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		ID:             t.ID(),
		OwnerID:        t.OwnerID(),
		ProjectID:      t.ProjectID(),
		Subject:        t.Subject(),
		Status:         t.Status().String(),
		Priority:       t.Priority().String(),
		Billable:       t.Billable(),
		SentimentScore: t.SentimentScore(),
		SnoozeUntil:    t.SnoozeUntil(),
		Source:         t.Source().String(),
		CreatedBy:      t.CreatedBy(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
		ClosedAt:       t.ClosedAt(),
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToTicketDTO(t))
	}
	return out
}

func ToMessageDTO(m *ticket.Message) *MessageDTO {
	if m == nil {
		return nil
	}
	out := &MessageDTO{
		ID:            m.ID(),
		TicketID:      m.TicketID(),
		SenderKind:    string(m.Sender().Kind()),
		Body:          m.Body(),
		IsInternal:    m.IsInternal(),
		AttachmentRef: m.AttachmentRef(),
		RevealDelayMs: m.RevealDelay().Milliseconds(),
		Kind:          m.Meta().Kind,
		CreatedAt:     m.CreatedAt(),
	}
	if !m.Sender().IsSystem() {
		id := m.Sender().UserID()
		out.SenderID = &id
	}
	return out
}

func ToMessageDTOs(messages []*ticket.Message) []*MessageDTO {
	out := make([]*MessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, ToMessageDTO(m))
	}
	return out
}
