package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/clientdesk/clientdesk/internal/application/ticket/dto"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

type CreateInsightTicketCommand struct {
	Actor    authorization.Principal
	OwnerID  uint
	Subject  string
	Insight  string
	Priority string
}

type CreateInsightTicketResult struct {
	Ticket   *dto.TicketDTO    `json:"ticket"`
	Messages []*dto.MessageDTO `json:"messages"`
}

type CreateInsightTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	users       user.Directory
	txMgr       Transactor
	notifier    Notifier
	logger      logger.Interface
}

func NewCreateInsightTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	users user.Directory,
	txMgr Transactor,
	notifier Notifier,
	logger logger.Interface,
) *CreateInsightTicketUseCase {
	return &CreateInsightTicketUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		users:       users,
		txMgr:       txMgr,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute opens an ai_triage ticket for a client from a dashboard insight.
// No automated reply runs for it until a human picks it up.
func (uc *CreateInsightTicketUseCase) Execute(ctx context.Context, cmd CreateInsightTicketCommand) (*CreateInsightTicketResult, error) {
	uc.logger.Infow("executing create insight ticket use case", "owner_id", cmd.OwnerID, "actor_id", cmd.Actor.UserID)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if !cmd.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can open insight tickets")
	}
	if strings.TrimSpace(cmd.Insight) == "" {
		return nil, errors.NewValidationError("insight text is required")
	}

	owner, err := uc.users.GetByID(ctx, cmd.OwnerID)
	if err != nil {
		return nil, errors.NewNotFoundError("client not found")
	}
	if !owner.Role.IsClient() {
		return nil, errors.NewValidationError("insight tickets can only be opened for clients")
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := ticket.NewTicket(owner.ID, cmd.Actor.UserID, cmd.Subject, priority, vo.SourceInsight)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var seeded []*ticket.Message
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Save(txCtx, t); err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}
		for i, body := range ticket.InsightSeedMessages(cmd.Insight) {
			m, err := ticket.NewSystemMessage(t.ID(), body, 0, ticket.MessageMeta{Kind: "insight", ScriptIndex: i})
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.messageRepo.Append(txCtx, m); err != nil {
				return fmt.Errorf("failed to save seed message: %w", err)
			}
			seeded = append(seeded, m)
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to create insight ticket", "owner_id", owner.ID, "error", txErr)
		return nil, txErr
	}

	uc.notifier.PublishEvent(ctx, ticket.NewTicketCreatedEvent(t))
	uc.notifier.NotifyTicketParticipants(ctx, t, cmd.Actor.UserID,
		fmt.Sprintf("Insight ticket #%d opened: %s", t.ID(), t.Subject()), true)

	uc.logger.Infow("insight ticket created successfully", "ticket_id", t.ID(), "owner_id", owner.ID)

	return &CreateInsightTicketResult{
		Ticket:   dto.ToTicketDTO(t),
		Messages: dto.ToMessageDTOs(seeded),
	}, nil
}
