package ticket

import (
	"context"
	"time"

	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, ticketID uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	// LastCreatedAtByOwner returns nil when the owner has no tickets.
	LastCreatedAtByOwner(ctx context.Context, ownerID uint) (*time.Time, error)
	FindIdleWaitingClient(ctx context.Context, updatedBefore time.Time, limit int) ([]*Ticket, error)
}

// TicketFilter narrows a listing. Results are always in listing order and
// exclude tickets snoozed past Now unless IncludeSnoozed is set.
type TicketFilter struct {
	// OwnerIDs restricts results to these owners; nil means every owner.
	OwnerIDs       []uint
	Status         *vo.TicketStatus
	Priority       *vo.Priority
	IncludeSnoozed bool
	Now            time.Time
	Page           int
	PageSize       int
}

type MessageRepository interface {
	// Append stores the message with a created_at strictly after the ticket's previous message.
	Append(ctx context.Context, message *Message) error
	ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*Message, error)
	// Latest returns nil when the ticket has no messages.
	Latest(ctx context.Context, ticketID uint) (*Message, error)
}
