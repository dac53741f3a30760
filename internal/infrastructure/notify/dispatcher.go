// Package notify fans ticket activity out to in-app notifications, email and the event bus.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clientdesk/clientdesk/internal/domain/notification"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/goroutine"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

const (
	TargetTypeTicket = "ticket"

	deliveryTimeout = 30 * time.Second
)

// Target is either one user or every admin.
type Target struct {
	userID    uint
	allAdmins bool
}

func UserTarget(userID uint) Target {
	return Target{userID: userID}
}

// AllAdmins addresses every admin account.
var AllAdmins = Target{allAdmins: true}

func (t Target) IsAllAdmins() bool {
	return t.allAdmins
}

func (t Target) UserID() uint {
	return t.userID
}

// Mailer sends ticket notification emails.
type Mailer interface {
	SendTicketNotification(to, subject, body string, ticketID uint) error
}

// Dispatcher never returns delivery errors; they are logged.
type Dispatcher struct {
	users     user.Directory
	repo      notification.Repository
	mailer    Mailer
	publisher EventPublisher
	logger    logger.Interface
}

// NewDispatcher accepts a nil mailer (email disabled) and a nil publisher (events disabled).
func NewDispatcher(users user.Directory, repo notification.Repository, mailer Mailer, publisher EventPublisher, log logger.Interface) *Dispatcher {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Dispatcher{
		users:     users,
		repo:      repo,
		mailer:    mailer,
		publisher: publisher,
		logger:    log,
	}
}

// Notify delivers message to target in the background.
func (d *Dispatcher) Notify(ctx context.Context, target Target, message, targetType string, targetID uint) {
	ctx = goroutine.Detach(ctx)
	goroutine.SafeGo(d.logger, "notify", func() {
		ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
		defer cancel()
		d.Deliver(ctx, target, message, targetType, targetID)
	})
}

// NotifyTicketParticipants tells admins and the owner's partners about activity on t.
// The owner is included when includeOwner is set. The actor is never notified.
func (d *Dispatcher) NotifyTicketParticipants(ctx context.Context, t *ticket.Ticket, actorID uint, message string, includeOwner bool) {
	ctx = goroutine.Detach(ctx)
	goroutine.SafeGo(d.logger, "notify.participants", func() {
		ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
		defer cancel()
		d.DeliverToParticipants(ctx, t.OwnerID(), t.ID(), actorID, message, includeOwner)
	})
}

// PublishEvent sends a ticket event to the broker in the background.
func (d *Dispatcher) PublishEvent(ctx context.Context, evt ticket.Event) {
	ctx = goroutine.Detach(ctx)
	goroutine.SafeGo(d.logger, "notify.publish", func() {
		ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
		defer cancel()
		d.Publish(ctx, evt)
	})
}

// Deliver resolves target and delivers synchronously.
func (d *Dispatcher) Deliver(ctx context.Context, target Target, message, targetType string, targetID uint) {
	var recipients []*user.User
	if target.IsAllAdmins() {
		admins, err := d.users.ListByRole(ctx, authorization.RoleAdmin)
		if err != nil {
			d.logger.Errorw("failed to resolve admins for notification", "error", err)
			return
		}
		recipients = admins
	} else {
		u, err := d.users.GetByID(ctx, target.UserID())
		if err != nil {
			d.logger.Warnw("failed to resolve notification recipient",
				"user_id", target.UserID(),
				"error", err,
			)
			return
		}
		recipients = []*user.User{u}
	}
	d.deliverTo(ctx, recipients, message, targetType, targetID)
}

// DeliverToParticipants resolves ticket participants and delivers synchronously.
func (d *Dispatcher) DeliverToParticipants(ctx context.Context, ownerID, ticketID, actorID uint, message string, includeOwner bool) {
	recipients := d.participants(ctx, ownerID, actorID, includeOwner)
	d.deliverTo(ctx, recipients, message, TargetTypeTicket, ticketID)
}

func (d *Dispatcher) participants(ctx context.Context, ownerID, actorID uint, includeOwner bool) []*user.User {
	seen := map[uint]bool{actorID: true}
	var recipients []*user.User
	add := func(users []*user.User) {
		for _, u := range users {
			if !seen[u.ID] {
				seen[u.ID] = true
				recipients = append(recipients, u)
			}
		}
	}

	admins, err := d.users.ListByRole(ctx, authorization.RoleAdmin)
	if err != nil {
		d.logger.Errorw("failed to resolve admins for notification", "error", err)
	}
	add(admins)

	partners, err := d.users.ListPartnersOfClient(ctx, ownerID)
	if err != nil {
		d.logger.Errorw("failed to resolve partners for notification", "client_id", ownerID, "error", err)
	}
	add(partners)

	if includeOwner {
		owner, err := d.users.GetByID(ctx, ownerID)
		if err != nil {
			d.logger.Warnw("failed to resolve ticket owner for notification", "user_id", ownerID, "error", err)
		} else {
			add([]*user.User{owner})
		}
	}
	return recipients
}

func (d *Dispatcher) deliverTo(ctx context.Context, recipients []*user.User, message, targetType string, targetID uint) {
	if len(recipients) == 0 {
		return
	}

	rows := make([]*notification.Notification, 0, len(recipients))
	for _, u := range recipients {
		n, err := notification.NewNotification(u.ID, message, targetType, targetID)
		if err != nil {
			d.logger.Warnw("skipping invalid notification", "user_id", u.ID, "error", err)
			continue
		}
		rows = append(rows, n)
	}
	if err := d.repo.BulkCreate(ctx, rows); err != nil {
		d.logger.Errorw("failed to store notifications", "count", len(rows), "error", err)
	}

	if d.mailer == nil || targetType != TargetTypeTicket {
		return
	}
	for _, u := range recipients {
		if !u.Role.IsAdmin() || u.Email == "" {
			continue
		}
		if err := d.mailer.SendTicketNotification(u.Email, emailSubject(targetID), message, targetID); err != nil {
			d.logger.Warnw("failed to email notification",
				"user_id", u.ID,
				"ticket_id", targetID,
				"error", err,
			)
		}
	}
}

type eventEnvelope struct {
	ID string `json:"id"`
	ticket.Event
}

// Publish sends evt to the broker synchronously, keyed by its type.
func (d *Dispatcher) Publish(ctx context.Context, evt ticket.Event) {
	if err := d.publisher.Publish(ctx, string(evt.Type), eventEnvelope{ID: uuid.NewString(), Event: evt}); err != nil {
		d.logger.Warnw("failed to publish ticket event",
			"type", evt.Type,
			"ticket_id", evt.TicketID,
			"error", err,
		)
	}
}

func emailSubject(ticketID uint) string {
	return fmt.Sprintf("Support ticket #%d needs attention", ticketID)
}
