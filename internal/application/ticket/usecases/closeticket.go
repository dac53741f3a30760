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

type CloseTicketCommand struct {
	Actor    authorization.Principal
	TicketID uint
}

type CloseTicketResult struct {
	Ticket *dto.TicketDTO  `json:"ticket"`
	Notice *dto.MessageDTO `json:"notice"`
}

type CloseTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	users       user.Directory
	mutator     TicketMutator
	notifier    Notifier
	logger      logger.Interface
}

func NewCloseTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	users user.Directory,
	mutator TicketMutator,
	notifier Notifier,
	logger logger.Interface,
) *CloseTicketUseCase {
	return &CloseTicketUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		users:       users,
		mutator:     mutator,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error) {
	uc.logger.Infow("executing close ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}

	var (
		notice    *ticket.Message
		oldStatus string
	)
	t, err := uc.mutator.Mutate(ctx, cmd.TicketID, func(txCtx context.Context, t *ticket.Ticket) error {
		if err := authorizeView(txCtx, uc.users, cmd.Actor, t); err != nil {
			return err
		}
		oldStatus = t.Status().String()
		if err := t.Close(cmd.Actor.Role, cmd.Actor.UserID); err != nil {
			return err
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		m, err := ticket.NewSystemMessage(t.ID(), ticket.CloseNotice(cmd.Actor.Role), 0, ticket.MessageMeta{Kind: "close"})
		if err != nil {
			return err
		}
		if err := uc.messageRepo.Append(txCtx, m); err != nil {
			return fmt.Errorf("failed to save close notice: %w", err)
		}
		notice = m
		return nil
	})
	if err != nil {
		uc.logger.Warnw("close rejected", "ticket_id", cmd.TicketID, "error", err)
		return nil, toAppError(err)
	}

	uc.notifier.PublishEvent(ctx, ticket.NewStatusChangedEvent(t, oldStatus, cmd.Actor.UserID))
	uc.notifier.NotifyTicketParticipants(ctx, t, cmd.Actor.UserID,
		fmt.Sprintf("Ticket #%d was closed", t.ID()), true)

	uc.logger.Infow("ticket closed successfully", "ticket_id", t.ID(), "closed_by", cmd.Actor.UserID)

	return &CloseTicketResult{
		Ticket: dto.ToTicketDTO(t),
		Notice: dto.ToMessageDTO(notice),
	}, nil
}
