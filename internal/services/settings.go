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

// settingsSections maps API section names to their jsonb columns. Section
// names coming from requests are validated against this map before any
// column name reaches the repo.
var settingsSections = map[string]string{
	"general":       "general",
	"store":         "store",
	"checkout":      "checkout",
	"notifications": "notifications",
}

type SettingsService interface {
	GetSettings(ctx context.Context) (*types.MerchantSettings, error)
	UpdateSection(ctx context.Context, section string, value json.RawMessage) (*types.MerchantSettings, error)
}

type settingsService struct {
	db           *gorm.DB
	log          *logger.Logger
	settingsRepo repos.SettingsRepo
}

func NewSettingsService(db *gorm.DB, baseLog *logger.Logger, settingsRepo repos.SettingsRepo) SettingsService {
	return &settingsService{
		db:           db,
		log:          baseLog.With("service", "SettingsService"),
		settingsRepo: settingsRepo,
	}
}

// GetSettings returns the merchant's settings row, creating an empty one on
// first access so the console always has sections to render.
func (s *settingsService) GetSettings(ctx context.Context) (*types.MerchantSettings, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	settings, err := s.settingsRepo.GetByMerchantID(ctx, nil, rd.MerchantID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		empty := datatypes.JSON([]byte("{}"))
		settings, err = s.settingsRepo.Upsert(ctx, nil, &types.MerchantSettings{
			ID:            uuid.New(),
			MerchantID:    rd.MerchantID,
			General:       empty,
			Store:         empty,
			Checkout:      empty,
			Notifications: empty,
		})
		if err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func (s *settingsService) UpdateSection(ctx context.Context, section string, value json.RawMessage) (*types.MerchantSettings, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, apperrors.ErrUnauthorized
	}
	column, ok := settingsSections[section]
	if !ok {
		return nil, fmt.Errorf("unknown settings section %q: %w", section, apperrors.ErrInvalidArgument)
	}
	if len(value) == 0 || !json.Valid(value) {
		return nil, fmt.Errorf("settings section body must be valid JSON: %w", apperrors.ErrInvalidArgument)
	}

	// Ensure the row exists before the column update.
	if _, err := s.GetSettings(ctx); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.UpdateSection(ctx, nil, rd.MerchantID, column, value); err != nil {
		s.log.Warn("UpdateSection failed", "error", err, "section", section, "merchant_id", rd.MerchantID)
		return nil, err
	}
	return s.settingsRepo.GetByMerchantID(ctx, nil, rd.MerchantID)
}
