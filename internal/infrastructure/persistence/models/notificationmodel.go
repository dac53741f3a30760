package models

type NotificationModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index:idx_notifications_user,priority:1"`
	Message    string `gorm:"type:text;not null"`
	TargetType string `gorm:"size:50"`
	TargetID   uint   `gorm:"not null;default:0"`
	ReadAt     *int64 `gorm:"index:idx_notifications_user,priority:2"`
	CreatedAt  int64  `gorm:"not null"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
