// Package runner serializes mutations of a single ticket.
package runner

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	"github.com/clientdesk/clientdesk/internal/shared/keylock"
)

// Transactor is satisfied by *db.TransactionManager.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Runner applies a mutation to one ticket while holding both an in-process lock
// keyed by ticket ID and the row lock of the surrounding transaction.
type Runner struct {
	tickets ticket.TicketRepository
	tx      Transactor
	locks   *keylock.Locker
}

func New(tickets ticket.TicketRepository, tx Transactor, locks *keylock.Locker) *Runner {
	if locks == nil {
		locks = keylock.New()
	}
	return &Runner{
		tickets: tickets,
		tx:      tx,
		locks:   locks,
	}
}

// Mutate loads the ticket for update and calls fn inside one transaction.
// fn sees the locked ticket and must persist its own changes through txCtx.
// The ticket is returned as fn left it, even when fn fails.
func (r *Runner) Mutate(ctx context.Context, ticketID uint, fn func(txCtx context.Context, t *ticket.Ticket) error) (*ticket.Ticket, error) {
	unlock := r.locks.Lock(ticketID)
	defer unlock()

	var locked *ticket.Ticket
	err := r.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := r.tickets.GetByIDForUpdate(txCtx, ticketID)
		if err != nil {
			return err
		}
		locked = t
		return fn(txCtx, t)
	})
	return locked, err
}
