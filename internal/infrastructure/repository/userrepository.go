package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/clientdesk/clientdesk/internal/domain/user"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/mappers"
	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/models"
	"github.com/clientdesk/clientdesk/internal/shared/authorization"
	"github.com/clientdesk/clientdesk/internal/shared/db"
	"github.com/clientdesk/clientdesk/internal/shared/logger"
)

// UserDirectory implements user.Directory over the users and partner_clients tables.
type UserDirectory struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUserDirectory(db *gorm.DB, logger logger.Interface) *UserDirectory {
	return &UserDirectory{
		db:     db,
		logger: logger,
	}
}

func (r *UserDirectory) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		r.logger.Errorw("failed to get user", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return mappers.UserToDomain(&model), nil
}

func (r *UserDirectory) ListByRole(ctx context.Context, role authorization.UserRole) ([]*user.User, error) {
	var modelList []models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("role = ?", role.String()).
		Order("id ASC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return toUsers(modelList), nil
}

func (r *UserDirectory) ListPartnersOfClient(ctx context.Context, clientID uint) ([]*user.User, error) {
	var modelList []models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).
		Joins("JOIN partner_clients pc ON pc.partner_id = users.id").
		Where("pc.client_id = ? AND users.role = ?", clientID, authorization.RolePartner.String()).
		Order("users.id ASC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list partners of client: %w", err)
	}
	return toUsers(modelList), nil
}

func (r *UserDirectory) ListClientIDsOfPartner(ctx context.Context, partnerID uint) ([]uint, error) {
	ids := []uint{}
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PartnerClientModel{}).
		Where("partner_id = ?", partnerID).
		Order("client_id ASC").
		Pluck("client_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients of partner: %w", err)
	}
	return ids, nil
}

func (r *UserDirectory) IsPartnerOf(ctx context.Context, partnerID, clientID uint) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PartnerClientModel{}).
		Where("partner_id = ? AND client_id = ?", partnerID, clientID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check partner assignment: %w", err)
	}
	return count > 0, nil
}

func toUsers(modelList []models.UserModel) []*user.User {
	users := make([]*user.User, 0, len(modelList))
	for i := range modelList {
		users = append(users, mappers.UserToDomain(&modelList[i]))
	}
	return users
}
