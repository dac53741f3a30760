package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/clientdesk/clientdesk/internal/application/ticket/dto"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

type SnoozeTicketCommand struct {
	Actor    authorization.Principal
	TicketID uint
	// Until nil clears the snooze.
	Until *time.Time
}

type SnoozeTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	users      user.Directory
	mutator    TicketMutator
	logger     logger.Interface
}

func NewSnoozeTicketUseCase(
	ticketRepo ticket.TicketRepository,
	users user.Directory,
	mutator TicketMutator,
	logger logger.Interface,
) *SnoozeTicketUseCase {
	return &SnoozeTicketUseCase{
		ticketRepo: ticketRepo,
		users:      users,
		mutator:    mutator,
		logger:     logger,
	}
}

func (uc *SnoozeTicketUseCase) Execute(ctx context.Context, cmd SnoozeTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing snooze ticket use case", "ticket_id", cmd.TicketID, "until", cmd.Until)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if err := requireStaff(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.Until != nil && !cmd.Until.After(time.Now()) {
		return nil, errors.NewValidationError("snooze time must be in the future")
	}

	t, err := uc.mutator.Mutate(ctx, cmd.TicketID, func(txCtx context.Context, t *ticket.Ticket) error {
		if err := authorizeView(txCtx, uc.users, cmd.Actor, t); err != nil {
			return err
		}
		if t.Status().IsClosed() {
			return ticket.ErrTicketClosed
		}
		t.Snooze(cmd.Until)
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("snooze rejected", "ticket_id", cmd.TicketID, "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("ticket snooze updated", "ticket_id", t.ID(), "snooze_until", t.SnoozeUntil())
	return dto.ToTicketDTO(t), nil
}
