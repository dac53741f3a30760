package usecases

import (
	"context"
	"fmt"

	"github.com/clientdesk/clientdesk/internal/application/ticket/dto"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

// UpdateTicketCommand changes only the fields that are set.
type UpdateTicketCommand struct {
	Actor    authorization.Principal
	TicketID uint
	Priority *string
	Billable *bool
	// ProjectID links a project. ClearProject detaches the current one and wins over ProjectID.
	ProjectID    *uint
	ClearProject bool
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	users      user.Directory
	mutator    TicketMutator
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	users user.Directory,
	mutator TicketMutator,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		users:      users,
		mutator:    mutator,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if err := requireStaff(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.Priority == nil && cmd.Billable == nil && cmd.ProjectID == nil && !cmd.ClearProject {
		return nil, errors.NewValidationError("no fields to update")
	}

	var priority *vo.Priority
	if cmd.Priority != nil {
		p, err := vo.NewPriority(*cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		priority = &p
	}

	t, err := uc.mutator.Mutate(ctx, cmd.TicketID, func(txCtx context.Context, t *ticket.Ticket) error {
		if err := authorizeView(txCtx, uc.users, cmd.Actor, t); err != nil {
			return err
		}
		if priority != nil {
			if err := t.ChangePriority(*priority); err != nil {
				return errors.NewValidationError(err.Error())
			}
		}
		if cmd.Billable != nil {
			t.SetBillable(*cmd.Billable)
		}
		switch {
		case cmd.ClearProject:
			t.LinkProject(nil)
		case cmd.ProjectID != nil:
			t.LinkProject(cmd.ProjectID)
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("update rejected", "ticket_id", cmd.TicketID, "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", t.ID())
	return dto.ToTicketDTO(t), nil
}
