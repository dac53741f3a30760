package notification

import "context"

type Repository interface {
	BulkCreate(ctx context.Context, notifications []*Notification) error
	ListByUserID(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]*Notification, int64, error)
	// MarkAsRead only affects notifications owned by userID.
	MarkAsRead(ctx context.Context, userID, id uint) error
}
