package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/types"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error)
	GetByID(ctx context.Context, tx *gorm.DB, merchantID, productID uuid.UUID) (*types.Product, error)
	GetByMerchantID(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID) ([]*types.Product, error)
	GetBySKUs(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID, skus []string) ([]*types.Product, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, merchantID, productID uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, merchantID, productID uuid.UUID) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(products) == 0 {
		return []*types.Product{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (pr *productRepo) GetByID(ctx context.Context, tx *gorm.DB, merchantID, productID uuid.UUID) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if merchantID == uuid.Nil || productID == uuid.Nil {
		return nil, nil
	}

	var product types.Product
	err := transaction.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", productID, merchantID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (pr *productRepo) GetByMerchantID(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Product
	if merchantID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) GetBySKUs(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID, skus []string) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Product
	if merchantID == uuid.Nil || len(skus) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("merchant_id = ? AND sku IN ?", merchantID, skus).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *productRepo) UpdateFields(ctx context.Context, tx *gorm.DB, merchantID, productID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if merchantID == uuid.Nil || productID == uuid.Nil || len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ? AND merchant_id = ?", productID, merchantID).
		Updates(updates).Error
}

func (pr *productRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, merchantID, productID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if merchantID == uuid.Nil || productID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", productID, merchantID).
		Delete(&types.Product{}).Error
}
