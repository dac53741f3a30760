package usecases

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	"github.com/clientdesk/clientdesk/internal/infrastructure/notify"
)

// Notifier is fire-and-forget: it never reports failures back to the caller.
type Notifier interface {
	Notify(ctx context.Context, target notify.Target, message, targetType string, targetID uint)
	NotifyTicketParticipants(ctx context.Context, t *ticket.Ticket, actorID uint, message string, includeOwner bool)
	PublishEvent(ctx context.Context, evt ticket.Event)
}

// EscalationRunner runs the automated reply step for a ticket after a client
// message has been committed. It never fails the caller.
type EscalationRunner interface {
	Run(ctx context.Context, ticketID uint)
}

// TicketMutator serializes changes to one ticket.
type TicketMutator interface {
	Mutate(ctx context.Context, ticketID uint, fn func(txCtx context.Context, t *ticket.Ticket) error) (*ticket.Ticket, error)
}

// Transactor is satisfied by *db.TransactionManager.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
