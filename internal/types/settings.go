package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MerchantSettings holds the console settings forms as loose jsonb sections.
// The console edits one section at a time; the backend does not interpret
// the section contents beyond storing and returning them.
type MerchantSettings struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MerchantID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"merchant_id"`
	Merchant      *Merchant      `gorm:"constraint:OnDelete:CASCADE;foreignKey:MerchantID;references:ID" json:"merchant,omitempty"`
	General       datatypes.JSON `gorm:"column:general;type:jsonb" json:"general"`
	Store         datatypes.JSON `gorm:"column:store;type:jsonb" json:"store"`
	Checkout      datatypes.JSON `gorm:"column:checkout;type:jsonb" json:"checkout"`
	Notifications datatypes.JSON `gorm:"column:notifications;type:jsonb" json:"notifications"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (MerchantSettings) TableName() string { return "merchant_settings" }
