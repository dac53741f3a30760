package usecases

import (
	"context"
	"fmt"

	"github.com/clientdesk/clientdesk/internal/application/notification/dto"
	"github.com/clientdesk/clientdesk/internal/domain/notification"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
	"github.com/clientdesk/clientdesk/internal/shared/utils"
)

type ListNotificationsUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.Repository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, req dto.ListNotificationsRequest) (*dto.NotificationListDTO, error) {
	uc.logger.Infow("executing list notifications use case", "user_id", req.UserID, "unread_only", req.UnreadOnly)

	p := utils.ValidatePagination(req.Page, req.PageSize)
	items, total, err := uc.repo.ListByUserID(ctx, req.UserID, req.UnreadOnly, p.PageSize, (p.Page-1)*p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", req.UserID, "error", err)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return &dto.NotificationListDTO{
		Items:    dto.ToNotificationDTOs(items),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
