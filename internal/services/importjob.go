package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/merchly/console-backend/internal/logger"
	apperrors "github.com/merchly/console-backend/internal/pkg/errors"
	"github.com/merchly/console-backend/internal/repos"
	"github.com/merchly/console-backend/internal/requestdata"
	"github.com/merchly/console-backend/internal/types"
)

const JobTypeProductCSVImport = "product_csv_import"

// ProductCSVPayload is the stored payload for a product CSV import job.
type ProductCSVPayload struct {
	FileName string `json:"file_name"`
	CSV      string `json:"csv"`
}

type ImportJobService interface {
	EnqueueProductCSV(ctx context.Context, fileName string, csvData []byte) (*types.ImportJob, error)
	ListJobs(ctx context.Context) ([]*types.ImportJob, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*types.ImportJob, error)
}

type importJobService struct {
	db      *gorm.DB
	log     *logger.Logger
	jobRepo repos.ImportJobRepo
}

func NewImportJobService(db *gorm.DB, baseLog *logger.Logger, jobRepo repos.ImportJobRepo) ImportJobService {
	return &importJobService{
		db:      db,
		log:     baseLog.With("service", "ImportJobService"),
		jobRepo: jobRepo,
	}
}

func (s *importJobService) EnqueueProductCSV(ctx context.Context, fileName string, csvData []byte) (*types.ImportJob, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	if len(csvData) == 0 {
		return nil, fmt.Errorf("empty upload: %w", apperrors.ErrInvalidArgument)
	}
	payload, err := json.Marshal(ProductCSVPayload{FileName: fileName, CSV: string(csvData)})
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	job := &types.ImportJob{
		ID:          uuid.New(),
		MerchantID:  rd.MerchantID,
		CreatedByID: rd.UserID,
		JobType:     JobTypeProductCSVImport,
		Status:      "queued",
		Payload:     datatypes.JSON(payload),
	}
	if _, err := s.jobRepo.Create(ctx, nil, []*types.ImportJob{job}); err != nil {
		s.log.Warn("EnqueueProductCSV failed", "error", err, "merchant_id", rd.MerchantID)
		return nil, err
	}
	s.log.Info("queued product csv import", "job_id", job.ID, "file", fileName)
	return job, nil
}

func (s *importJobService) ListJobs(ctx context.Context) ([]*types.ImportJob, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	return s.jobRepo.GetByMerchantID(ctx, nil, rd.MerchantID)
}

func (s *importJobService) GetJob(ctx context.Context, jobID uuid.UUID) (*types.ImportJob, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	job, err := s.jobRepo.GetByID(ctx, nil, rd.MerchantID, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperrors.ErrNotFound
	}
	return job, nil
}
