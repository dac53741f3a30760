package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clientdesk/clientdesk/internal/application/ticket/dto"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	vo "github.com/clientdesk/clientdesk/internal/domain/ticket/valueobjects"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/keylock"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

const defaultCreateCooldown = 60 * time.Second

type CreateTicketCommand struct {
	Actor authorization.Principal
	// OwnerID is the client the ticket belongs to. Ignored when a client creates a ticket.
	OwnerID       uint
	Subject       string
	Body          string
	Priority      string
	AttachmentRef string
}

type CreateTicketResult struct {
	Ticket  *dto.TicketDTO  `json:"ticket"`
	Message *dto.MessageDTO `json:"message"`
}

type CreateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	messageRepo ticket.MessageRepository
	users       user.Directory
	txMgr       Transactor
	notifier    Notifier
	escalation  EscalationRunner
	cooldown    time.Duration
	ownerLocks  *keylock.Locker
	logger      logger.Interface
}

// NewCreateTicketUseCase accepts a nil escalation runner when automated replies are disabled.
func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	users user.Directory,
	txMgr Transactor,
	notifier Notifier,
	escalation EscalationRunner,
	cooldown time.Duration,
	logger logger.Interface,
) *CreateTicketUseCase {
	if cooldown <= 0 {
		cooldown = defaultCreateCooldown
	}
	return &CreateTicketUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		users:       users,
		txMgr:       txMgr,
		notifier:    notifier,
		escalation:  escalation,
		cooldown:    cooldown,
		ownerLocks:  keylock.New(),
		logger:      logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "actor_id", cmd.Actor.UserID, "role", cmd.Actor.Role)

	if err := validateActor(cmd.Actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cmd.Body) == "" && cmd.AttachmentRef == "" {
		return nil, errors.NewValidationError("message body or attachment is required")
	}

	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	ownerID, source, err := uc.resolveOwner(ctx, cmd)
	if err != nil {
		return nil, err
	}

	newTicket, err := ticket.NewTicket(ownerID, cmd.Actor.UserID, cmd.Subject, priority, source)
	if err != nil {
		uc.logger.Warnw("invalid ticket", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}
	newTicket.RecordSentiment(cmd.Subject + " " + cmd.Body)

	// One client's cooldown check and insert run alone.
	unlock := func() {}
	if cmd.Actor.Role.IsClient() {
		unlock = uc.ownerLocks.Lock(ownerID)
	}
	var first *ticket.Message
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if cmd.Actor.Role.IsClient() {
			if err := uc.checkCooldown(txCtx, ownerID); err != nil {
				return err
			}
		}

		if err := uc.ticketRepo.Save(txCtx, newTicket); err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}

		msg, err := ticket.NewMessage(newTicket.ID(), cmd.Actor.UserID, cmd.Body, false, cmd.AttachmentRef)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.messageRepo.Append(txCtx, msg); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
		first = msg
		return nil
	})
	unlock()
	if txErr != nil {
		uc.logger.Errorw("failed to create ticket", "owner_id", ownerID, "error", txErr)
		return nil, txErr
	}

	uc.notifier.PublishEvent(ctx, ticket.NewTicketCreatedEvent(newTicket))
	uc.notifier.NotifyTicketParticipants(ctx, newTicket, cmd.Actor.UserID,
		fmt.Sprintf("New ticket #%d: %s", newTicket.ID(), newTicket.Subject()), !cmd.Actor.Role.IsClient())
	alertOnSentiment(ctx, uc.notifier, newTicket, 0)

	result := newTicket
	if cmd.Actor.Role.IsClient() && uc.escalation != nil {
		uc.escalation.Run(ctx, newTicket.ID())
		if reloaded, err := uc.ticketRepo.GetByID(ctx, newTicket.ID()); err == nil {
			result = reloaded
		} else {
			uc.logger.Warnw("failed to reload ticket after escalation", "ticket_id", newTicket.ID(), "error", err)
		}
	}

	uc.logger.Infow("ticket created successfully",
		"ticket_id", newTicket.ID(),
		"owner_id", ownerID,
		"sentiment_score", newTicket.SentimentScore(),
	)

	return &CreateTicketResult{
		Ticket:  dto.ToTicketDTO(result),
		Message: dto.ToMessageDTO(first),
	}, nil
}

// resolveOwner returns the owning client and the ticket source for the actor.
func (uc *CreateTicketUseCase) resolveOwner(ctx context.Context, cmd CreateTicketCommand) (uint, vo.Source, error) {
	if cmd.Actor.Role.IsClient() {
		return cmd.Actor.UserID, vo.SourceClient, nil
	}

	if cmd.OwnerID == 0 {
		return 0, "", errors.NewValidationError("owner_id is required when staff open a ticket")
	}
	owner, err := uc.users.GetByID(ctx, cmd.OwnerID)
	if err != nil {
		uc.logger.Warnw("ticket owner not found", "owner_id", cmd.OwnerID, "error", err)
		return 0, "", errors.NewNotFoundError("client not found")
	}
	if !owner.Role.IsClient() {
		return 0, "", errors.NewValidationError("tickets can only be opened for clients")
	}
	if cmd.Actor.Role == authorization.RolePartner {
		ok, err := uc.users.IsPartnerOf(ctx, cmd.Actor.UserID, owner.ID)
		if err != nil {
			return 0, "", fmt.Errorf("failed to check partner assignment: %w", err)
		}
		if !ok {
			return 0, "", errors.NewForbiddenError("you are not assigned to this client")
		}
	}
	return owner.ID, vo.SourceStaff, nil
}

func (uc *CreateTicketUseCase) checkCooldown(ctx context.Context, ownerID uint) error {
	last, err := uc.ticketRepo.LastCreatedAtByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to check last ticket: %w", err)
	}
	if last == nil {
		return nil
	}
	if wait := uc.cooldown - time.Since(*last); wait > 0 {
		uc.logger.Warnw("ticket creation rate limited", "owner_id", ownerID, "retry_in", wait.Round(time.Second))
		return errors.NewRateLimitedError("Please wait before opening another ticket",
			fmt.Sprintf("retry in %d seconds", int(wait.Round(time.Second).Seconds())))
	}
	return nil
}
