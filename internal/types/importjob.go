package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ImportJob struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MerchantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"merchant_id"`
	Merchant    *Merchant      `gorm:"constraint:OnDelete:CASCADE;foreignKey:MerchantID;references:ID" json:"merchant,omitempty"`
	CreatedByID uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by_id"`
	JobType     string         `gorm:"column:job_type;not null;index" json:"job_type"`
	Status      string         `gorm:"column:status;not null;default:'queued';index" json:"status"`
	Attempts    int            `gorm:"column:attempts;not null;default:0" json:"attempts"`
	Payload     datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	TotalRows   int            `gorm:"column:total_rows;not null;default:0" json:"total_rows"`
	CreatedRows int            `gorm:"column:created_rows;not null;default:0" json:"created_rows"`
	FailedRows  int            `gorm:"column:failed_rows;not null;default:0" json:"failed_rows"`
	LastError   string         `gorm:"column:last_error" json:"last_error,omitempty"`
	LastErrorAt *time.Time     `gorm:"column:last_error_at" json:"last_error_at,omitempty"`
	LockedAt    *time.Time     `gorm:"column:locked_at" json:"locked_at,omitempty"`
	HeartbeatAt *time.Time     `gorm:"column:heartbeat_at" json:"heartbeat_at,omitempty"`
	FinishedAt  *time.Time     `gorm:"column:finished_at" json:"finished_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ImportJob) TableName() string { return "import_job" }
