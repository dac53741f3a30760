package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/clientdesk/clientdesk/internal/application/ticket/dto"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

type ReplyTicketCommand struct {
	Actor         authorization.Principal
	TicketID      uint
	Body          string
	IsInternal    bool
	AttachmentRef string
}

type ReplyTicketResult struct {
	Message *dto.MessageDTO `json:"message"`
	// Status is read after any automated reply, so it reflects escalations it caused.
	Status        string `json:"status"`
	StatusChanged bool   `json:"status_changed"`
}

type ReplyTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	users       user.Directory
	mutator     TicketMutator
	notifier    Notifier
	escalation  EscalationRunner
	logger      logger.Interface
}

// NewReplyTicketUseCase accepts a nil escalation runner when automated replies are disabled.
func NewReplyTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	users user.Directory,
	mutator TicketMutator,
	notifier Notifier,
	escalation EscalationRunner,
	logger logger.Interface,
) *ReplyTicketUseCase {
	return &ReplyTicketUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		users:       users,
		mutator:     mutator,
		notifier:    notifier,
		escalation:  escalation,
		logger:      logger,
	}
}

func (uc *ReplyTicketUseCase) Execute(ctx context.Context, cmd ReplyTicketCommand) (*ReplyTicketResult, error) {
	uc.logger.Infow("executing reply ticket use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.Actor.UserID,
		"internal", cmd.IsInternal,
	)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cmd.Body) == "" && cmd.AttachmentRef == "" {
		return nil, errors.NewValidationError("message body or attachment is required")
	}
	if cmd.IsInternal && !cmd.Actor.Role.IsStaff() {
		return nil, errors.NewForbiddenError("only staff can add internal notes")
	}

	var (
		msg           *ticket.Message
		oldStatus     string
		statusChanged bool
		scoreBefore   int
	)
	t, err := uc.mutator.Mutate(ctx, cmd.TicketID, func(txCtx context.Context, t *ticket.Ticket) error {
		if err := authorizeView(txCtx, uc.users, cmd.Actor, t); err != nil {
			return err
		}
		oldStatus = t.Status().String()
		scoreBefore = t.SentimentScore()

		changed, err := t.ApplyReply(cmd.Actor.Role, cmd.IsInternal)
		if err != nil {
			return err
		}
		statusChanged = changed
		if cmd.Actor.Role.IsClient() {
			t.RecordSentiment(cmd.Body)
		}

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		m, err := ticket.NewMessage(t.ID(), cmd.Actor.UserID, cmd.Body, cmd.IsInternal, cmd.AttachmentRef)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.messageRepo.Append(txCtx, m); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
		msg = m
		return nil
	})
	if err != nil {
		uc.logger.Warnw("reply rejected", "ticket_id", cmd.TicketID, "error", err)
		return nil, toAppError(err)
	}

	uc.notifyReply(ctx, cmd, t, oldStatus, statusChanged, scoreBefore)

	status := t.Status().String()
	if cmd.Actor.Role.IsClient() && !cmd.IsInternal && !t.Status().IsHumanOwned() && uc.escalation != nil {
		uc.escalation.Run(ctx, t.ID())
		if reloaded, err := uc.ticketRepo.GetByID(ctx, t.ID()); err == nil {
			status = reloaded.Status().String()
		} else {
			uc.logger.Warnw("failed to reload ticket after escalation", "ticket_id", t.ID(), "error", err)
		}
	}

	uc.logger.Infow("reply added successfully",
		"ticket_id", t.ID(),
		"message_id", msg.ID(),
		"status", status,
	)

	return &ReplyTicketResult{
		Message:       dto.ToMessageDTO(msg),
		Status:        status,
		StatusChanged: status != oldStatus,
	}, nil
}

func (uc *ReplyTicketUseCase) notifyReply(ctx context.Context, cmd ReplyTicketCommand, t *ticket.Ticket, oldStatus string, statusChanged bool, scoreBefore int) {
	if cmd.IsInternal {
		uc.notifier.NotifyTicketParticipants(ctx, t, cmd.Actor.UserID,
			fmt.Sprintf("Internal note on ticket #%d: %s", t.ID(), t.Subject()), false)
		return
	}

	uc.notifier.PublishEvent(ctx, ticket.NewTicketRepliedEvent(t, cmd.Actor.UserID))
	if statusChanged {
		uc.notifier.PublishEvent(ctx, ticket.NewStatusChangedEvent(t, oldStatus, cmd.Actor.UserID))
	}

	if cmd.Actor.Role.IsClient() {
		uc.notifier.NotifyTicketParticipants(ctx, t, cmd.Actor.UserID,
			fmt.Sprintf("Client replied on ticket #%d: %s", t.ID(), t.Subject()), false)
		alertOnSentiment(ctx, uc.notifier, t, scoreBefore)
		return
	}
	uc.notifier.NotifyTicketParticipants(ctx, t, cmd.Actor.UserID,
		fmt.Sprintf("New reply on ticket #%d: %s", t.ID(), t.Subject()), true)
}
