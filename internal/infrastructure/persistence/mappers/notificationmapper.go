package mappers

import (
	"github.com/clientdesk/clientdesk/internal/domain/notification"
	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/models"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
)

func NotificationToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:         n.ID(),
		UserID:     n.UserID(),
		Message:    n.Message(),
		TargetType: n.TargetType(),
		TargetID:   n.TargetID(),
		ReadAt:     timePtrToMillis(n.ReadAt()),
		CreatedAt:  n.CreatedAt().UnixMilli(),
	}
}

func NotificationToDomain(model *models.NotificationModel) *notification.Notification {
	return notification.ReconstructNotification(
		model.ID,
		model.UserID,
		model.Message,
		model.TargetType,
		model.TargetID,
		millisPtrToTime(model.ReadAt),
		millisToTime(model.CreatedAt),
	)
}

func UserToDomain(model *models.UserModel) *user.User {
	return &user.User{
		ID:                 model.ID,
		Role:               authorization.ParseUserRole(model.Role),
		Name:               model.Name,
		Business:           model.Business,
		Email:              model.Email,
		ExternalCustomerID: model.ExternalCustomerID,
	}
}
