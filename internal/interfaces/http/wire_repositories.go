package http

import (
	"github.com/clientdesk/clientdesk/internal/domain/notification"
	"github.com/clientdesk/clientdesk/internal/domain/setting"
	"github.com/clientdesk/clientdesk/internal/domain/ticket"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	ticketRepo       ticket.TicketRepository
	messageRepo      ticket.MessageRepository
	userDirectory    user.Directory
	notificationRepo notification.Repository
	settingRepo      setting.Repository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		ticketRepo:       repository.NewTicketRepository(c.db),
		messageRepo:      repository.NewMessageRepository(c.db),
		userDirectory:    repository.NewUserDirectory(c.db, c.log),
		notificationRepo: repository.NewNotificationRepository(c.db),
		settingRepo:      repository.NewSystemSettingRepository(c.db, c.log),
	}
}
