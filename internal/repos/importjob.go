package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/types"
)

type ImportJobRepo interface {
	Create(ctx context.Context, tx *gorm.DB, jobs []*types.ImportJob) ([]*types.ImportJob, error)
	GetByID(ctx context.Context, tx *gorm.DB, merchantID, jobID uuid.UUID) (*types.ImportJob, error)
	GetByMerchantID(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID) ([]*types.ImportJob, error)
	ClaimNextRunnable(ctx context.Context, tx *gorm.DB, maxAttempts int, retryDelay time.Duration, staleRunning time.Duration) (*types.ImportJob, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, jobID uuid.UUID, updates map[string]interface{}) error
	Heartbeat(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) error
}

type importJobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewImportJobRepo(db *gorm.DB, baseLog *logger.Logger) ImportJobRepo {
	return &importJobRepo{
		db:  db,
		log: baseLog.With("repo", "ImportJobRepo"),
	}
}

func (r *importJobRepo) Create(ctx context.Context, tx *gorm.DB, jobs []*types.ImportJob) ([]*types.ImportJob, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(jobs) == 0 {
		return []*types.ImportJob{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *importJobRepo) GetByID(ctx context.Context, tx *gorm.DB, merchantID, jobID uuid.UUID) (*types.ImportJob, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if merchantID == uuid.Nil || jobID == uuid.Nil {
		return nil, nil
	}

	var job types.ImportJob
	err := transaction.WithContext(ctx).
		Where("id = ? AND merchant_id = ?", jobID, merchantID).
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *importJobRepo) GetByMerchantID(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID) ([]*types.ImportJob, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ImportJob
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

// runnableJobCondition matches queued jobs, failed jobs past their retry
// delay, and running jobs whose heartbeat went stale. Both non-queued
// branches carry the attempts cap so a job that keeps failing or hanging is
// eventually left alone.
const runnableJobCondition = `
	(
		status = ?
		OR (
			status = ?
			AND attempts < ?
			AND (last_error_at IS NULL OR last_error_at < ?)
		)
		OR (
			status = ?
			AND attempts < ?
			AND heartbeat_at IS NOT NULL
			AND heartbeat_at < ?
		)
	)
`

func runnableJobArgs(maxAttempts int, retryCutoff, staleCutoff time.Time) []interface{} {
	return []interface{}{"queued", "failed", maxAttempts, retryCutoff, "running", maxAttempts, staleCutoff}
}

// ClaimNextRunnable picks the oldest queued job (or a retryable failed one,
// or a stale running one) and flips it to running inside one transaction.
// SKIP LOCKED keeps concurrent workers from fighting over the same row.
func (r *importJobRepo) ClaimNextRunnable(ctx context.Context, tx *gorm.DB, maxAttempts int, retryDelay time.Duration, staleRunning time.Duration) (*types.ImportJob, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now()
	retryCutoff := now.Add(-retryDelay)
	staleCutoff := now.Add(-staleRunning)
	var claimed *types.ImportJob
	err := transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
		var job types.ImportJob
		q := txx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where(runnableJobCondition, runnableJobArgs(maxAttempts, retryCutoff, staleCutoff)...).
			Order("created_at ASC")
		qErr := q.First(&job).Error
		if errors.Is(qErr, gorm.ErrRecordNotFound) {
			return nil
		}
		if qErr != nil {
			return qErr
		}
		uErr := txx.Model(&types.ImportJob{}).
			Where("id = ?", job.ID).
			Updates(map[string]interface{}{
				"status":       "running",
				"attempts":     gorm.Expr("attempts + 1"),
				"locked_at":    now,
				"heartbeat_at": now,
				"updated_at":   now,
			}).Error
		if uErr != nil {
			return uErr
		}
		claimed = &job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *importJobRepo) UpdateFields(ctx context.Context, tx *gorm.DB, jobID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if jobID == uuid.Nil || len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.ImportJob{}).
		Where("id = ?", jobID).
		Updates(updates).Error
}

func (r *importJobRepo) Heartbeat(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if jobID == uuid.Nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.ImportJob{}).
		Where("id = ?", jobID).
		Update("heartbeat_at", time.Now()).Error
}
