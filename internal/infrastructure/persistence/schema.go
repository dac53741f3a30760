// Package persistence owns the relational schema of the ticket core.
package persistence

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/clientdesk/clientdesk/internal/infrastructure/persistence/models"
)

// Models lists every table the service owns, in creation order.
func Models() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.PartnerClientModel{},
		&models.TicketModel{},
		&models.TicketMessageModel{},
		&models.NotificationModel{},
		&models.SystemSettingModel{},
	}
}

// EnsureSchema creates missing tables and adds missing columns and indexes.
// Running it against an up-to-date schema changes nothing.
func EnsureSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
