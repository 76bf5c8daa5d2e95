package services

import (
	"context"

	"github.com/google/uuid"

	redisclient "github.com/merchly/console-backend/internal/clients/redis"
	"github.com/merchly/console-backend/internal/logger"
	apperrors "github.com/merchly/console-backend/internal/pkg/errors"
	"github.com/merchly/console-backend/internal/requestdata"
	"github.com/merchly/console-backend/internal/types"
)

// DraftService scopes the redis draft store to the authenticated merchant.
// Draft persistence is deliberately best-effort: a failed save is reported
// as saved=false, never as a request failure, because losing an autosave
// must not break the editing session.
type DraftService interface {
	SaveDraft(ctx context.Context, quizID uuid.UUID, doc types.QuizDocument, currentStep int) (bool, error)
	LoadDraft(ctx context.Context, quizID uuid.UUID) (*types.QuizDocument, int, bool, error)
	ClearDraft(ctx context.Context, quizID uuid.UUID) error
}

type draftService struct {
	log   *logger.Logger
	store redisclient.DraftStore
}

func NewDraftService(baseLog *logger.Logger, store redisclient.DraftStore) DraftService {
	return &draftService{
		log:   baseLog.With("service", "DraftService"),
		store: store,
	}
}

func (s *draftService) SaveDraft(ctx context.Context, quizID uuid.UUID, doc types.QuizDocument, currentStep int) (bool, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return false, apperrors.ErrUnauthorized
	}
	if err := s.store.Save(ctx, rd.MerchantID, quizID, doc, currentStep); err != nil {
		s.log.Warn("SaveDraft failed, continuing without draft", "error", err, "quiz_id", quizID)
		return false, nil
	}
	return true, nil
}

func (s *draftService) LoadDraft(ctx context.Context, quizID uuid.UUID) (*types.QuizDocument, int, bool, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return nil, 0, false, apperrors.ErrUnauthorized
	}
	doc, step, ok, err := s.store.Load(ctx, rd.MerchantID, quizID)
	if err != nil {
		// Read errors degrade to "no draft found".
		s.log.Warn("LoadDraft failed, treating as absent", "error", err, "quiz_id", quizID)
		return nil, 0, false, nil
	}
	return doc, step, ok, nil
}

func (s *draftService) ClearDraft(ctx context.Context, quizID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.MerchantID == uuid.Nil {
		return apperrors.ErrUnauthorized
	}
	return s.store.Clear(ctx, rd.MerchantID, quizID)
}
