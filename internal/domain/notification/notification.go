package notification

import (
	"fmt"
	"time"
	"unicode/utf8"
)

const maxNotificationLength = 1000

// Notification is an in-app message for one user, optionally pointing at a target entity.
type Notification struct {
	id         uint
	userID     uint
	message    string
	targetType string
	targetID   uint
	readAt     *time.Time
	createdAt  time.Time
}

func NewNotification(userID uint, message, targetType string, targetID uint) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(message) > maxNotificationLength {
		runes := []rune(message)
		message = string(runes[:maxNotificationLength])
	}
	return &Notification{
		userID:     userID,
		message:    message,
		targetType: targetType,
		targetID:   targetID,
		createdAt:  time.Now().UTC(),
	}, nil
}

func ReconstructNotification(id, userID uint, message, targetType string, targetID uint, readAt *time.Time, createdAt time.Time) *Notification {
	return &Notification{
		id:         id,
		userID:     userID,
		message:    message,
		targetType: targetType,
		targetID:   targetID,
		readAt:     readAt,
		createdAt:  createdAt,
	}
}

func (n *Notification) ID() uint {
	return n.id
}

func (n *Notification) UserID() uint {
	return n.userID
}

func (n *Notification) Message() string {
	return n.message
}

func (n *Notification) TargetType() string {
	return n.targetType
}

func (n *Notification) TargetID() uint {
	return n.targetID
}

func (n *Notification) ReadAt() *time.Time {
	return n.readAt
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Notification) IsRead() bool {
	return n.readAt != nil
}

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	n.id = id
	return nil
}
