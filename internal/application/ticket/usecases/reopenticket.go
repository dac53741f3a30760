package usecases

import (
	"context"
	"fmt"

	"github.com/clientdesk/clientdesk/internal/application/ticket/dto"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

type ReopenTicketCommand struct {
	Actor    authorization.Principal
	TicketID uint
}

type ReopenTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	users      user.Directory
	mutator    TicketMutator
	notifier   Notifier
	logger     logger.Interface
}

func NewReopenTicketUseCase(
	ticketRepo ticket.TicketRepository,
	users user.Directory,
	mutator TicketMutator,
	notifier Notifier,
	logger logger.Interface,
) *ReopenTicketUseCase {
	return &ReopenTicketUseCase{
		ticketRepo: ticketRepo,
		users:      users,
		mutator:    mutator,
		notifier:   notifier,
		logger:     logger,
	}
}

// Execute reopens a closed ticket, or hands an escalated ticket back to automated replies.
func (uc *ReopenTicketUseCase) Execute(ctx context.Context, cmd ReopenTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing reopen ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}

	var oldStatus string
	t, err := uc.mutator.Mutate(ctx, cmd.TicketID, func(txCtx context.Context, t *ticket.Ticket) error {
		if err := authorizeView(txCtx, uc.users, cmd.Actor, t); err != nil {
			return err
		}
		oldStatus = t.Status().String()
		if err := t.Reopen(cmd.Actor.Role, cmd.Actor.UserID); err != nil {
			return err
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("reopen rejected", "ticket_id", cmd.TicketID, "error", err)
		return nil, toAppError(err)
	}

	uc.notifier.PublishEvent(ctx, ticket.NewStatusChangedEvent(t, oldStatus, cmd.Actor.UserID))
	uc.notifier.NotifyTicketParticipants(ctx, t, cmd.Actor.UserID,
		fmt.Sprintf("Ticket #%d was reopened", t.ID()), true)

	uc.logger.Infow("ticket reopened successfully", "ticket_id", t.ID(), "previous_status", oldStatus)
	return dto.ToTicketDTO(t), nil
}
