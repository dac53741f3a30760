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

type GetThreadQuery struct {
	Actor    authorization.Principal
	TicketID uint
}

type GetThreadUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	users       user.Directory
	logger      logger.Interface
}

func NewGetThreadUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	users user.Directory,
	logger logger.Interface,
) *GetThreadUseCase {
	return &GetThreadUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		users:       users,
		logger:      logger,
	}
}

// Execute returns the ticket with its messages in thread order. Clients never see internal notes.
func (uc *GetThreadUseCase) Execute(ctx context.Context, query GetThreadQuery) (*dto.ThreadDTO, error) {
	uc.logger.Debugw("executing get thread use case", "ticket_id", query.TicketID, "actor_id", query.Actor.UserID)

	if err := validateActor(query.Actor); err != nil {
		return nil, err
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}
	if err := authorizeView(ctx, uc.users, query.Actor, t); err != nil {
		return nil, err
	}

	messages, err := uc.messageRepo.ListByTicket(ctx, t.ID(), query.Actor.Role.IsStaff())
	if err != nil {
		uc.logger.Errorw("failed to list messages", "ticket_id", t.ID(), "error", err)
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return &dto.ThreadDTO{
		Ticket:   dto.ToTicketDTO(t),
		Messages: dto.ToMessageDTOs(messages),
	}, nil
}
