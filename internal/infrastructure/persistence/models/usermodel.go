package models

// UserModel is the subset of the users table the ticket core reads.
type UserModel struct {
	ID                 uint   `gorm:"primaryKey"`
	Role               string `gorm:"size:20;not null;index"`
	Name               string `gorm:"size:100"`
	Business           string `gorm:"size:200"`
	Email              string `gorm:"size:255;not null;uniqueIndex"`
	ExternalCustomerID string `gorm:"size:100"`
	CreatedAt          int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt          int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// PartnerClientModel assigns a partner to a client.
type PartnerClientModel struct {
	PartnerID uint  `gorm:"primaryKey;autoIncrement:false"`
	ClientID  uint  `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
}

func (PartnerClientModel) TableName() string {
	return "partner_clients"
}
