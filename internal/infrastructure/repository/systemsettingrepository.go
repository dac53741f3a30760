package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/clientdesk/clientdesk/internal/domain/setting"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/models"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

// SystemSettingRepository implements setting.Repository
type SystemSettingRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSystemSettingRepository(db *gorm.DB, logger logger.Interface) setting.Repository {
	return &SystemSettingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SystemSettingRepository) Get(ctx context.Context, key string) (*setting.SystemSetting, error) {
	var model models.SystemSettingModel

	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, setting.ErrSettingNotFound
		}
		r.logger.Errorw("failed to get setting", "key", key, "error", err)
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	return &setting.SystemSetting{
		Key:       model.SettingKey,
		Value:     model.Value,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func (r *SystemSettingRepository) Upsert(ctx context.Context, key, value string) error {
	model := models.SystemSettingModel{SettingKey: key, Value: value}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert setting", "key", key, "error", err)
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}
