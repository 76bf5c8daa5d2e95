package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/types"
)

type SettingsRepo interface {
	GetByMerchantID(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID) (*types.MerchantSettings, error)
	Upsert(ctx context.Context, tx *gorm.DB, settings *types.MerchantSettings) (*types.MerchantSettings, error)
	UpdateSection(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID, column string, value []byte) error
}

type settingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingsRepo(db *gorm.DB, baseLog *logger.Logger) SettingsRepo {
	repoLog := baseLog.With("repo", "SettingsRepo")
	return &settingsRepo{db: db, log: repoLog}
}

func (sr *settingsRepo) GetByMerchantID(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID) (*types.MerchantSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if merchantID == uuid.Nil {
		return nil, nil
	}

	var settings types.MerchantSettings
	err := transaction.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (sr *settingsRepo) Upsert(ctx context.Context, tx *gorm.DB, settings *types.MerchantSettings) (*types.MerchantSettings, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if settings == nil || settings.MerchantID == uuid.Nil {
		return nil, nil
	}

	existing, err := sr.GetByMerchantID(ctx, transaction, settings.MerchantID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := transaction.WithContext(ctx).Create(settings).Error; err != nil {
			return nil, err
		}
		return settings, nil
	}
	settings.ID = existing.ID
	if err := transaction.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSection writes a single jsonb section column. The column name comes
// from a fixed allowlist in the service layer, never from request input.
func (sr *settingsRepo) UpdateSection(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID, column string, value []byte) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if merchantID == uuid.Nil || column == "" {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.MerchantSettings{}).
		Where("merchant_id = ?", merchantID).
		Update(column, value).Error
}
