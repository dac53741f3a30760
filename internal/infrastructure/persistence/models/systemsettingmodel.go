package models

import (
	"time"
)

type SystemSettingModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	SettingKey string    `gorm:"column:setting_key;type:varchar(100);not null;uniqueIndex"`
	Value      string    `gorm:"column:value;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SystemSettingModel) TableName() string {
	return "system_settings"
}
