package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/clientdesk/clientdesk/internal/application/ticket/dto"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
	"github.com/clientdesk/clientdesk/internal/shared/utils"
)

type ListTicketsQuery struct {
	Actor    authorization.Principal
	Status   string
	Priority string
	// IncludeSnoozed is honoured for staff only.
	IncludeSnoozed bool
	Page           int
	PageSize       int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	users      user.Directory
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	users user.Directory,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		users:      users,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*dto.TicketListDTO, error) {
	uc.logger.Debugw("executing list tickets use case", "actor_id", query.Actor.UserID, "role", query.Actor.Role)

	if err := validateActor(query.Actor); err != nil {
		return nil, err
	}

	p := utils.ValidatePagination(query.Page, query.PageSize)
	filter := ticket.TicketFilter{
		IncludeSnoozed: query.IncludeSnoozed && query.Actor.Role.IsStaff(),
		Now:            time.Now().UTC(),
		Page:           p.Page,
		PageSize:       p.PageSize,
	}

	if query.Status != "" {
		s, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Status = &s
	}
	if query.Priority != "" {
		pr, err := vo.NewPriority(query.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Priority = &pr
	}

	switch query.Actor.Role {
	case authorization.RoleAdmin:
	case authorization.RolePartner:
		clientIDs, err := uc.users.ListClientIDsOfPartner(ctx, query.Actor.UserID)
		if err != nil {
			uc.logger.Errorw("failed to resolve partner clients", "partner_id", query.Actor.UserID, "error", err)
			return nil, fmt.Errorf("failed to resolve partner clients: %w", err)
		}
		if len(clientIDs) == 0 {
			return &dto.TicketListDTO{Items: []*dto.TicketDTO{}, Page: p.Page, PageSize: p.PageSize}, nil
		}
		filter.OwnerIDs = clientIDs
	default:
		filter.OwnerIDs = []uint{query.Actor.UserID}
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return &dto.TicketListDTO{
		Items:    dto.ToTicketDTOs(tickets),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
