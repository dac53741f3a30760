package ticket

import (
	"time"
)

type EventType string

const (
	EventTicketCreated       EventType = "ticket.created"
	EventTicketReplied       EventType = "ticket.replied"
	EventTicketStatusChanged EventType = "ticket.status_changed"
)

// Event is published to the message bus after a ticket change is committed.
type Event struct {
	Type       EventType `json:"type"`
	TicketID   uint      `json:"ticket_id"`
	OwnerID    uint      `json:"owner_id"`
	ActorID    uint      `json:"actor_id,omitempty"`
	OldStatus  string    `json:"old_status,omitempty"`
	NewStatus  string    `json:"new_status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewTicketCreatedEvent(t *Ticket) Event {
	return Event{
		Type:       EventTicketCreated,
		TicketID:   t.ID(),
		OwnerID:    t.OwnerID(),
		ActorID:    t.CreatedBy(),
		NewStatus:  t.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
}

func NewTicketRepliedEvent(t *Ticket, actorID uint) Event {
	return Event{
		Type:       EventTicketReplied,
		TicketID:   t.ID(),
		OwnerID:    t.OwnerID(),
		ActorID:    actorID,
		NewStatus:  t.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
}

// NewStatusChangedEvent uses actorID 0 for changes made by the system.
func NewStatusChangedEvent(t *Ticket, oldStatus string, actorID uint) Event {
	return Event{
		Type:       EventTicketStatusChanged,
		TicketID:   t.ID(),
		OwnerID:    t.OwnerID(),
		ActorID:    actorID,
		OldStatus:  oldStatus,
		NewStatus:  t.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
}
