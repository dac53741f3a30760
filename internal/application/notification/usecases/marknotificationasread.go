package usecases

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/domain/notification"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

type MarkNotificationAsReadUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewMarkNotificationAsReadUseCase(repo notification.Repository, logger logger.Interface) *MarkNotificationAsReadUseCase {
	return &MarkNotificationAsReadUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute marks one of the caller's notifications read. Marking twice is a no-op.
func (uc *MarkNotificationAsReadUseCase) Execute(ctx context.Context, id uint, userID uint) error {
	uc.logger.Infow("executing mark notification as read use case", "id", id, "user_id", userID)

	if id == 0 {
		return errors.NewValidationError("notification id is required")
	}

	if err := uc.repo.MarkAsRead(ctx, userID, id); err != nil {
		uc.logger.Warnw("failed to mark notification as read", "id", id, "user_id", userID, "error", err)
		return err
	}
	return nil
}
