package http

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/clientdesk/clientdesk/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	ticketHandler       *ticketHandlers.TicketHandler
	notificationHandler *handlers.NotificationHandler
	aiModelHandler      *handlers.AIModelHandler
	healthHandler       *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	u := c.ucs

	aiModelHandler := handlers.NewAIModelHandler(nil, c.log)
	if c.gateway != nil {
		aiModelHandler = handlers.NewAIModelHandler(c.gateway, c.log)
	}

	pingers := map[string]handlers.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		pingers["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}

	c.hdlrs = &allHandlers{
		ticketHandler: ticketHandlers.NewTicketHandler(
			u.createTicketUC,
			u.replyTicketUC,
			u.closeTicketUC,
			u.reopenTicketUC,
			u.getThreadUC,
			u.listTicketsUC,
			u.snoozeTicketUC,
			u.updateTicketUC,
			u.createInsightUC,
			c.log,
		),
		notificationHandler: handlers.NewNotificationHandler(u.listNotificationsUC, u.markNotificationUC, c.log),
		aiModelHandler:      aiModelHandler,
		healthHandler:       handlers.NewHealthHandler(pingers),
	}
}
