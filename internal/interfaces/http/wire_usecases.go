package http

import (
	notificationUsecases "github.com/clientdesk/clientdesk/internal/application/notification/usecases"
	"github.com/clientdesk/clientdesk/internal/application/ticket/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Tickets
	createTicketUC  *usecases.CreateTicketUseCase
	replyTicketUC   *usecases.ReplyTicketUseCase
	closeTicketUC   *usecases.CloseTicketUseCase
	reopenTicketUC  *usecases.ReopenTicketUseCase
	getThreadUC     *usecases.GetThreadUseCase
	listTicketsUC   *usecases.ListTicketsUseCase
	snoozeTicketUC  *usecases.SnoozeTicketUseCase
	updateTicketUC  *usecases.UpdateTicketUseCase
	createInsightUC *usecases.CreateInsightTicketUseCase
	autoCloseIdleUC *usecases.AutoCloseIdleUseCase

	// Notifications
	listNotificationsUC *notificationUsecases.ListNotificationsUseCase
	markNotificationUC  *notificationUsecases.MarkNotificationAsReadUseCase
}

func (c *Container) initUseCases() {
	r := c.repos
	log := c.log

	// A nil engine must reach the use cases as a nil interface.
	var esc usecases.EscalationRunner
	if c.engine != nil {
		esc = c.engine
	}

	c.ucs = &allUseCases{
		createTicketUC:  usecases.NewCreateTicketUseCase(r.ticketRepo, r.messageRepo, r.userDirectory, c.txMgr, c.dispatcher, esc, c.cfg.Tickets.CreateCooldown, log),
		replyTicketUC:   usecases.NewReplyTicketUseCase(r.ticketRepo, r.messageRepo, r.userDirectory, c.runner, c.dispatcher, esc, log),
		closeTicketUC:   usecases.NewCloseTicketUseCase(r.ticketRepo, r.messageRepo, r.userDirectory, c.runner, c.dispatcher, log),
		reopenTicketUC:  usecases.NewReopenTicketUseCase(r.ticketRepo, r.userDirectory, c.runner, c.dispatcher, log),
		getThreadUC:     usecases.NewGetThreadUseCase(r.ticketRepo, r.messageRepo, r.userDirectory, log),
		listTicketsUC:   usecases.NewListTicketsUseCase(r.ticketRepo, r.userDirectory, log),
		snoozeTicketUC:  usecases.NewSnoozeTicketUseCase(r.ticketRepo, r.userDirectory, c.runner, log),
		updateTicketUC:  usecases.NewUpdateTicketUseCase(r.ticketRepo, r.userDirectory, c.runner, log),
		createInsightUC: usecases.NewCreateInsightTicketUseCase(r.ticketRepo, r.messageRepo, r.userDirectory, c.txMgr, c.dispatcher, log),
		autoCloseIdleUC: usecases.NewAutoCloseIdleUseCase(r.ticketRepo, c.runner, c.dispatcher, c.cfg.Tickets.IdleCloseAfter, log),

		listNotificationsUC: notificationUsecases.NewListNotificationsUseCase(r.notificationRepo, log),
		markNotificationUC:  notificationUsecases.NewMarkNotificationAsReadUseCase(r.notificationRepo, log),
	}
}
