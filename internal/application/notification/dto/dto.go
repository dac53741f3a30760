package dto

import (
	"time"

	"github.com/clientdesk/clientdesk/internal/domain/notification"
)

type ListNotificationsRequest struct {
	UserID     uint
	UnreadOnly bool
	Page       int
	PageSize   int
}

type NotificationDTO struct {
	ID         uint       `json:"id"`
	Message    string     `json:"message"`
	TargetType string     `json:"target_type,omitempty"`
	TargetID   uint       `json:"target_id,omitempty"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type NotificationListDTO struct {
	Items    []*NotificationDTO `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

func ToNotificationDTO(n *notification.Notification) *NotificationDTO {
	if n == nil {
		return nil
	}
	return &NotificationDTO{
		ID:         n.ID(),
		Message:    n.Message(),
		TargetType: n.TargetType(),
		TargetID:   n.TargetID(),
		IsRead:     n.IsRead(),
		ReadAt:     n.ReadAt(),
		CreatedAt:  n.CreatedAt(),
	}
}

func ToNotificationDTOs(items []*notification.Notification) []*NotificationDTO {
	out := make([]*NotificationDTO, 0, len(items))
	for _, n := range items {
		out = append(out, ToNotificationDTO(n))
	}
	return out
}
