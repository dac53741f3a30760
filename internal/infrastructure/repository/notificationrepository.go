package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/clientdesk/clientdesk/internal/domain/notification"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/mappers"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/models"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
)

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) BulkCreate(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	modelList := make([]*models.NotificationModel, 0, len(notifications))
	for _, n := range notifications {
		modelList = append(modelList, mappers.NotificationToModel(n))
	}

	if err := r.db.WithContext(ctx).Create(&modelList).Error; err != nil {
		return fmt.Errorf("failed to create notifications: %w", err)
	}

	for i, n := range notifications {
		if err := n.SetID(modelList[i].ID); err != nil {
			return fmt.Errorf("failed to set notification ID: %w", err)
		}
	}
	return nil
}

func (r *NotificationRepositoryImpl) ListByUserID(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]*notification.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NotificationModel{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var modelList []models.NotificationModel
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	result := make([]*notification.Notification, 0, len(modelList))
	for i := range modelList {
		result = append(result, mappers.NotificationToDomain(&modelList[i]))
	}
	return result, total, nil
}

func (r *NotificationRepositoryImpl) MarkAsRead(ctx context.Context, userID, id uint) error {
	owned := r.db.WithContext(ctx).Model(&models.NotificationModel{}).Where("id = ? AND user_id = ?", id, userID)

	var count int64
	if err := owned.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to find notification: %w", err)
	}
	if count == 0 {
		return errors.NewNotFoundError("notification not found")
	}

	if err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", time.Now().UnixMilli()).Error; err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}
