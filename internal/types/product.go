package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MerchantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"merchant_id"`
	Merchant    *Merchant      `gorm:"constraint:OnDelete:CASCADE;foreignKey:MerchantID;references:ID" json:"merchant,omitempty"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	SKU         string         `gorm:"column:sku;index" json:"sku"`
	Description string         `gorm:"column:description" json:"description"`
	PriceCents  int64          `gorm:"column:price_cents;not null;default:0" json:"price_cents"`
	Currency    string         `gorm:"column:currency;not null;default:'USD'" json:"currency"`
	Images      datatypes.JSON `gorm:"column:images;type:jsonb" json:"images"`
	Status      string         `gorm:"column:status;not null;default:'draft'" json:"status"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string { return "product" }
