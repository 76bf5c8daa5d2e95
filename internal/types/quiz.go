package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quiz struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MerchantID uuid.UUID      `gorm:"type:uuid;not null;index" json:"merchant_id"`
	Merchant   *Merchant      `gorm:"constraint:OnDelete:CASCADE;foreignKey:MerchantID;references:ID" json:"merchant,omitempty"`
	Name       string         `gorm:"column:name;not null" json:"name"`
	Slug       string         `gorm:"column:slug;index" json:"slug"`
	Status     string         `gorm:"column:status;not null;default:'draft'" json:"status"`
	Document   datatypes.JSON `gorm:"column:document;type:jsonb" json:"document"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Quiz) TableName() string { return "quiz" }
