package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/infrastructure/notify"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	apperrors "github.com/clientdesk/clientdesk/internal/shared/errors"
)

// sentimentAlertThreshold is the score at which admins are told about a ticket.
const sentimentAlertThreshold = 80

// authorizeView allows admins everywhere, partners on their clients' tickets
// and clients on their own tickets.
func authorizeView(ctx context.Context, users user.Directory, actor authorization.Principal, t *ticket.Ticket) error {
	switch {
	case actor.Role.IsAdmin():
		return nil
	case actor.Role.IsClient():
		if t.IsOwnedBy(actor.UserID) {
			return nil
		}
	case actor.Role == authorization.RolePartner:
		ok, err := users.IsPartnerOf(ctx, actor.UserID, t.OwnerID())
		if err != nil {
			return fmt.Errorf("failed to check partner assignment: %w", err)
		}
		if ok {
			return nil
		}
	}
	return apperrors.NewForbiddenError("you don't have access to this ticket")
}

func requireStaff(actor authorization.Principal) error {
	if !actor.Role.IsStaff() {
		return apperrors.NewForbiddenError("only staff can perform this action")
	}
	return nil
}

func validateActor(actor authorization.Principal) error {
	if actor.UserID == 0 || !actor.Role.IsValid() {
		return apperrors.NewUnauthorizedError("authentication required")
	}
	return nil
}

// toAppError maps ticket rule violations onto application errors. Other errors pass through.
func toAppError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}
	switch {
	case errors.Is(err, ticket.ErrTicketClosed):
		return apperrors.NewTicketClosedError()
	case errors.Is(err, ticket.ErrNotPermitted):
		return apperrors.NewForbiddenError(ticket.ErrNotPermitted.Error())
	case errors.Is(err, ticket.ErrInvalidTransition):
		return apperrors.NewConflictError("invalid status transition", err.Error())
	}
	return err
}

func alertOnSentiment(ctx context.Context, n Notifier, t *ticket.Ticket, before int) {
	if before < sentimentAlertThreshold && t.SentimentScore() >= sentimentAlertThreshold {
		n.Notify(ctx, notify.AllAdmins, fmt.Sprintf("Ticket #%d needs attention: sentiment score is %d", t.ID(), t.SentimentScore()),
			notify.TargetTypeTicket, t.ID())
	}
}
