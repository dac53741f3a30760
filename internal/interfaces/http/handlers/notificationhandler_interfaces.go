package handlers

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/application/notification/dto"
)

// Use case interfaces for NotificationHandler - enables unit testing with mocks.

type listNotificationsExecutor interface {
	Execute(ctx context.Context, req dto.ListNotificationsRequest) (*dto.NotificationListDTO, error)
}

type markNotificationAsReadExecutor interface {
	Execute(ctx context.Context, id uint, userID uint) error
}

// modelRefresher is satisfied by *ai.Gateway.
type modelRefresher interface {
	RefreshModel(ctx context.Context) (string, error)
}
