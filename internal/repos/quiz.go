package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/types"
)

type QuizRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error)
	GetByID(ctx context.Context, tx *gorm.DB, merchantID, quizID uuid.UUID) (*types.Quiz, error)
	GetByMerchantID(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID) ([]*types.Quiz, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, merchantID, quizID uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, merchantID, quizID uuid.UUID) error
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	repoLog := baseLog.With("repo", "QuizRepo")
	return &quizRepo{db: db, log: repoLog}
}

func (qr *quizRepo) Create(ctx context.Context, tx *gorm.DB, quizzes []*types.Quiz) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if len(quizzes) == 0 {
		return []*types.Quiz{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// GetByID is merchant-scoped; a quiz belonging to another merchant reads as
// not found.
func (qr *quizRepo) GetByID(ctx context.Context, tx *gorm.DB, merchantID, quizID uuid.UUID) (*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if merchantID == uuid.Nil || quizID == uuid.Nil {
		return nil, nil
	}

	var quiz types.Quiz
	err := transaction.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", quizID, merchantID).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (qr *quizRepo) GetByMerchantID(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID) ([]*types.Quiz, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	var results []*types.Quiz
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

func (qr *quizRepo) UpdateFields(ctx context.Context, tx *gorm.DB, merchantID, quizID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if merchantID == uuid.Nil || quizID == uuid.Nil || len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Quiz{}).
		Where("id = ? AND merchant_id = ?", quizID, merchantID).
		Updates(updates).Error
}

func (qr *quizRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, merchantID, quizID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}

	if merchantID == uuid.Nil || quizID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", quizID, merchantID).
		Delete(&types.Quiz{}).Error
}
