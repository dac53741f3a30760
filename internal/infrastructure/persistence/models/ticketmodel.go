package models

import (
	"gorm.io/datatypes"
)

// TicketModel timestamps are unix milliseconds and are always written by the domain, never by gorm.
type TicketModel struct {
	ID             uint   `gorm:"primaryKey"`
	OwnerID        uint   `gorm:"not null;index:idx_tickets_owner_created,priority:1"`
	ProjectID      *uint  `gorm:"index"`
	Subject        string `gorm:"size:200;not null"`
	Status         string `gorm:"size:20;not null;index"`
	Priority       string `gorm:"size:20;not null;default:'normal'"`
	Billable       bool   `gorm:"not null;default:false"`
	SentimentScore int    `gorm:"not null;default:0"`
	SnoozeUntil    *int64 `gorm:"index"`
	Source         string `gorm:"size:20;not null;default:'client'"`
	CreatedBy      uint   `gorm:"not null;default:0"`
	Version        int    `gorm:"not null;default:1"`
	CreatedAt      int64  `gorm:"not null;index:idx_tickets_owner_created,priority:2"`
	UpdatedAt      int64  `gorm:"not null;index"`
	ClosedAt       *int64
}

func (TicketModel) TableName() string {
	return "tickets"
}

// TicketMessageModel rows are append-only. SenderID is NULL for system messages.
type TicketMessageModel struct {
	ID            uint           `gorm:"primaryKey"`
	TicketID      uint           `gorm:"not null;index:idx_ticket_messages_thread,priority:1"`
	SenderKind    string         `gorm:"size:10;not null;default:'human'"`
	SenderID      *uint          `gorm:"index"`
	Body          string         `gorm:"type:text;not null"`
	IsInternal    bool           `gorm:"not null;default:false"`
	AttachmentRef string         `gorm:"size:500"`
	RevealDelayMs int64          `gorm:"not null;default:0"`
	Meta          datatypes.JSON `gorm:"type:json"`
	CreatedAt     int64          `gorm:"not null;index:idx_ticket_messages_thread,priority:2"`
}

func (TicketMessageModel) TableName() string {
	return "ticket_messages"
}
